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

package workflow_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"google.golang.org/genai"

	"github.com/brandmatch/brand-media-analyzer/internal/cloud"
	"github.com/brandmatch/brand-media-analyzer/internal/core/workflow"
)

const tName = "github.com/brandmatch/brand-media-analyzer/tests/workflow"

var logger = otelslog.NewLogger(tName)

func TestMain(m *testing.M) {
	logger.Info("starting workflow test suite")
	os.Exit(m.Run())
}

// newTestClients builds a service client container with a configured agent
// model but no live connections; pipeline assembly never touches the
// network.
func newTestClients(modelName string) *cloud.ServiceClients {
	generationConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	return &cloud.ServiceClients{
		AgentModels: map[string]*cloud.QuotaAwareGenerativeAIModel{
			modelName: cloud.NewQuotaAwareModel(generationConfig, "gemini-2.0-flash", nil, 1),
		},
	}
}

func newTestConfig(prompt string) *cloud.Config {
	config := cloud.NewConfig()
	config.PromptTemplates.BrandingPrompt = prompt
	return config
}

func TestNewBrandAnalysisPipelineAttachesResponseSchema(t *testing.T) {
	clients := newTestClients("branding")
	config := newTestConfig("Analyze the video. Example: {{.EXAMPLE_JSON}}")

	pipeline, err := workflow.NewBrandAnalysisPipeline(config, clients, "branding")
	require.NoError(t, err)
	require.NotNil(t, pipeline)

	schema := clients.AgentModels["branding"].GenerativeContentConfig.ResponseSchema
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "temas_abordados")
	assert.Contains(t, schema.Required, "marcas_match")
}

func TestNewBrandAnalysisPipelineRejectsUnknownModel(t *testing.T) {
	clients := newTestClients("branding")
	config := newTestConfig("Analyze the video.")

	_, err := workflow.NewBrandAnalysisPipeline(config, clients, "summarizer")
	assert.Error(t, err)
}

func TestNewBrandAnalysisPipelineRejectsBadTemplate(t *testing.T) {
	clients := newTestClients("branding")
	config := newTestConfig("Analyze the video. Example: {{.EXAMPLE_JSON")

	_, err := workflow.NewBrandAnalysisPipeline(config, clients, "branding")
	assert.Error(t, err)
}
