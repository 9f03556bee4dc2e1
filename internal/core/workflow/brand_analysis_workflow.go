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

// Package workflow assembles the analysis pipeline from the commands in
// the commands package. The pipeline for one video is: ask the model for a
// schema-constrained analysis, then parse and validate the response. It is
// built once at startup and shared across requests; all per-request state
// travels in the chain context.
package workflow

import (
	"fmt"
	"text/template"

	"github.com/brandmatch/brand-media-analyzer/internal/cloud"
	"github.com/brandmatch/brand-media-analyzer/internal/core/commands"
	"github.com/brandmatch/brand-media-analyzer/internal/core/cor"
	"github.com/brandmatch/brand-media-analyzer/internal/core/schema"
)

// AnalysisOutputParam is the context key the finished BrandAnalysis is
// stored under when the pipeline completes.
const AnalysisOutputParam = "__brand_analysis__"

// NewBrandAnalysisPipeline builds the two-step analysis chain for the
// named agent model.
//
// Inputs:
//   - config: The application configuration, holding the instruction
//     template text.
//   - serviceClients: The shared cloud clients, holding the rate-limited
//     model wrappers.
//   - agentModelName: The key of the agent model to use (e.g. "branding").
//
// Outputs:
//   - cor.Chain: The assembled pipeline.
//   - error: Non-nil when the named model is not configured or the
//     instruction template does not parse.
func NewBrandAnalysisPipeline(
	config *cloud.Config,
	serviceClients *cloud.ServiceClients,
	agentModelName string) (cor.Chain, error) {

	agentModel, ok := serviceClients.AgentModels[agentModelName]
	if !ok {
		return nil, fmt.Errorf("agent model %q is not configured", agentModelName)
	}

	// Constrain the model's output to the analysis schema. The wrapper's
	// generation config is shared, so this is a startup-time mutation, not
	// a per-request one.
	agentModel.GenerativeContentConfig.ResponseSchema = schema.BrandAnalysis()

	instructionTemplate, err := template.New(agentModelName).Parse(config.PromptTemplates.BrandingPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse branding instruction template: %w", err)
	}

	creator := commands.NewBrandAnalysisCreator("brand_analysis_creator", agentModel, instructionTemplate)

	toStruct := commands.NewBrandAnalysisToStruct("brand_analysis_to_struct")
	toStruct.OutputParamName = AnalysisOutputParam

	chain := cor.NewBaseChain("brand_analysis_pipeline")
	chain.AddCommand(creator)
	chain.AddCommand(toStruct)
	return chain, nil
}
