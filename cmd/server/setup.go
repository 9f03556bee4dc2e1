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

// This file wires the application together at startup: configuration,
// cloud clients, the analysis pipeline, and the services the HTTP layer
// depends on.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/brandmatch/brand-media-analyzer/internal/cloud"
	"github.com/brandmatch/brand-media-analyzer/internal/core/services"
	"github.com/brandmatch/brand-media-analyzer/internal/core/session"
	"github.com/brandmatch/brand-media-analyzer/internal/core/workflow"
)

// brandingAgentModel is the config key of the agent model that produces
// brand analyses.
const brandingAgentModel = "branding"

// StateManager holds the fully wired application state shared by the HTTP
// handlers.
type StateManager struct {
	Config          *cloud.Config
	CloudClients    *cloud.ServiceClients
	Sessions        *session.Manager
	UploadService   *services.UploadService
	AnalysisService *services.AnalysisService
}

// GetConfig loads the layered TOML configuration, applies environment
// overrides, and validates the result. Missing required settings are
// fatal.
func GetConfig() *cloud.Config {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		_ = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		_ = os.Setenv(cloud.EnvConfigRuntime, "local")
	}

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)
	config.ApplyEnvOverrides()

	if err := config.Validate(); err != nil {
		slog.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	return config
}

// InitState creates the cloud clients, the analysis pipeline, and the
// application services.
func InitState(ctx context.Context, config *cloud.Config) (*StateManager, error) {
	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		return nil, err
	}

	pipeline, err := workflow.NewBrandAnalysisPipeline(config, cloudClients, brandingAgentModel)
	if err != nil {
		return nil, err
	}

	uploadService := services.NewUploadService(
		cloudClients.StorageClient,
		cloudClients.IAMClient,
		config.Storage.UploadBucket,
		config.Application.SignerServiceAccountEmail)

	return &StateManager{
		Config:          config,
		CloudClients:    cloudClients,
		Sessions:        session.NewManager(),
		UploadService:   uploadService,
		AnalysisService: services.NewAnalysisService(pipeline),
	}, nil
}
