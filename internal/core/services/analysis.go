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

// This file implements the analysis service: it runs the brand-analysis
// pipeline over one stored video and classifies the failure modes the
// pipeline can surface.
package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/brandmatch/brand-media-analyzer/internal/core/commands"
	"github.com/brandmatch/brand-media-analyzer/internal/core/cor"
	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/schema"
	"github.com/brandmatch/brand-media-analyzer/internal/core/workflow"
)

// AnalysisError wraps a pipeline failure with a stable reason category so
// the HTTP layer can distinguish quota exhaustion and permission problems
// from a malformed response. Reason is one of "quota", "permission",
// "parse", or "model".
type AnalysisError struct {
	Reason string
	Err    error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed (%s): %v", e.Reason, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// classifyAnalysisError maps a pipeline failure onto a stable reason.
// Schema validation failures pass through untouched so callers can report
// which fields were missing.
func classifyAnalysisError(err error) error {
	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return &AnalysisError{Reason: "quota", Err: err}
		case 401, 403:
			return &AnalysisError{Reason: "permission", Err: err}
		}
		return &AnalysisError{Reason: "model", Err: err}
	}

	return &AnalysisError{Reason: "model", Err: err}
}

// AnalysisService runs the brand-analysis pipeline. The pipeline is built
// once at startup; each Analyze call gets its own chain context.
type AnalysisService struct {
	pipeline cor.Chain
}

// NewAnalysisService is the constructor for the AnalysisService.
func NewAnalysisService(pipeline cor.Chain) *AnalysisService {
	return &AnalysisService{pipeline: pipeline}
}

// Analyze produces a brand-compatibility analysis for one stored video.
// A single attempt is made; a failed request surfaces to the caller
// rather than being retried.
//
// Outputs:
//   - *model.BrandAnalysis: The validated analysis with VideoURL set.
//   - error: A *schema.ValidationError for a non-conforming response, or
//     an *AnalysisError for every other failure.
func (s *AnalysisService) Analyze(ctx context.Context, record *model.UploadRecord) (*model.BrandAnalysis, error) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, record)
	chainCtx.Add(commands.UploadRecordContextKey, record)

	s.pipeline.Execute(chainCtx)

	if chainCtx.HasErrors() {
		for _, err := range chainCtx.GetErrors() {
			return nil, classifyAnalysisError(err)
		}
	}

	analysis, ok := chainCtx.Get(workflow.AnalysisOutputParam).(*model.BrandAnalysis)
	if !ok {
		return nil, &AnalysisError{Reason: "model", Err: fmt.Errorf("pipeline produced no analysis")}
	}
	return analysis, nil
}
