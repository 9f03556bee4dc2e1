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
// services. This file initializes and holds the client objects the
// application needs. It acts as a dependency injection container: a single
// ServiceClients struct is created at startup and passed explicitly to the
// services that need it, so tests can substitute fakes instead of reaching
// for module-level singletons.
//
// Structs:
//   - ServiceClients: Container holding the initialized Google Cloud
//     clients and configured model wrappers.
//
// Functions:
//   - Close: Gracefully shuts down the client connections.
//   - NewCloudServiceClients: Factory that creates and configures all
//     clients from the application configuration.
package cloud

import (
	"context"
	"fmt"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/storage"
	"google.golang.org/genai"
)

// ServiceClients is the central container for all clients that interact
// with external Google Cloud services.
type ServiceClients struct {
	StorageClient *storage.Client                         // Client for Google Cloud Storage (GCS).
	GenAIClient   *genai.Client                           // Client for Google's Generative AI services (Vertex AI).
	IAMClient     *credentials.IamCredentialsClient       // Client for IAM, used to sign preview URLs.
	AgentModels   map[string]*QuotaAwareGenerativeAIModel // Configured GenAI agent models, keyed by a logical name.
}

// Close releases the client connections. Connections are normally managed
// by the application's root context; this method provides an explicit
// teardown for tests and controlled shutdowns.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.IAMClient.Close()
	// The genai client holds no closable connection in the current SDK.
}

// NewCloudServiceClients initializes all required Google Cloud service
// clients based on the provided configuration.
//
// Inputs:
//   - ctx: The root context for the application, used to manage the
//     lifecycle of the clients.
//   - config: The loaded application configuration.
//
// Outputs:
//   - *ServiceClients: The fully initialized container.
//   - error: An error if any of the clients fail to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	iamClient, err := credentials.NewIamCredentialsClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create IAM credentials client: %w", err)
	}

	// Build a configured, rate-limited wrapper for each agent model in the
	// configuration. The response schema is attached later by the workflow
	// that owns the model.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey, values := range config.AgentModels {
		generationConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(generationConfig, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		StorageClient: sc,
		GenAIClient:   gc,
		IAMClient:     iamClient,
		AgentModels:   agentModels,
	}, nil
}
