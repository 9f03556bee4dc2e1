// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud provides components for interacting with Google Cloud
// services. This file implements a decorator around the Generative AI
// client that enforces the per-model request quota. Vertex AI rejects
// callers who exceed their requests-per-minute allowance, so every call
// first acquires a token from a rate limiter.
//
// The wrapper makes exactly one attempt per call. Analysis requests are
// user-initiated and the user is the retry policy; an automatic retry loop
// would hide quota problems behind multi-minute stalls of the interface.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: Wraps a model name, its generation
//     config, and a rate limiter.
//
// Functions:
//   - NewQuotaAwareModel: Constructor for the wrapper.
//   - GenerateContent: Rate-limited passthrough to the GenAI API.
package cloud

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel bundles a generative model with the request
// configuration and rate limiter it must be called through.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig // Generation parameters, including the response schema.
	ModelName               string                       // The Vertex AI model identifier.
	ModelHandle             *genai.Models                // Handle into the GenAI client's model service.
	RateLimit               *rate.Limiter                // Limits request frequency to stay under quota.
}

// NewQuotaAwareModel creates a rate-limited model wrapper.
//
// Inputs:
//   - wrapped: The generation config applied to every request.
//   - name: The Vertex AI model identifier.
//   - modelHandle: The GenAI client's model service.
//   - requestsPerSecond: The maximum number of API calls allowed per second.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		RateLimit:               rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
	}
}

// GenerateContent blocks until the rate limiter admits the request, then
// makes a single call to the generative model. The caller's context bounds
// both the wait and the request itself.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
}
