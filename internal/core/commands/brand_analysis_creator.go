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

// Package commands provides the concrete Command implementations that make
// up the analysis pipeline. This file defines the command that sends the
// brand-compatibility request to the generative model.
//
// Logic Flow:
//  1. It receives the UploadRecord of the stored video from the context.
//  2. It executes the instruction template, injecting a well-formed example
//     of the expected JSON output (few-shot prompting).
//  3. It builds one multimodal request: the instruction text plus a
//     FileData part referencing the video by its gs:// locator.
//  4. It makes a single, rate-limited call to the model, constrained to
//     the brand-analysis response schema.
//  5. It places the raw response text into the context for the parsing
//     command that follows.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"go.opentelemetry.io/otel/metric"

	"github.com/brandmatch/brand-media-analyzer/internal/cloud"
	"github.com/brandmatch/brand-media-analyzer/internal/core/cor"
	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"google.golang.org/genai"
)

// UploadRecordContextKey is the context key under which the pipeline's
// UploadRecord is stored, so every command in the chain can reach the
// video's locator and public URL.
const UploadRecordContextKey = "__upload_record__"

// videoMIMEType is the content type of uploaded videos. The upload
// surface accepts MP4 only, mirroring the file picker's restriction.
const videoMIMEType = "video/mp4"

// BrandAnalysisCreator is a command that asks the generative model for a
// schema-constrained brand-compatibility analysis of a stored video.
type BrandAnalysisCreator struct {
	cor.BaseCommand
	generativeAIModel        *cloud.QuotaAwareGenerativeAIModel // The rate-limited generative model client.
	template                 *template.Template                 // The Go template for building the instruction text.
	geminiInputTokenCounter  metric.Int64Counter                // OTel counter for input tokens.
	geminiOutputTokenCounter metric.Int64Counter                // OTel counter for output tokens.
}

// NewBrandAnalysisCreator is the constructor for the BrandAnalysisCreator
// command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - generativeAIModel: The rate-limited wrapper for the model client.
//   - template: A parsed Go template for the instruction text.
//
// Outputs:
//   - *BrandAnalysisCreator: The instantiated command with telemetry
//     counters initialized.
func NewBrandAnalysisCreator(
	name string,
	generativeAIModel *cloud.QuotaAwareGenerativeAIModel,
	template *template.Template) *BrandAnalysisCreator {

	out := &BrandAnalysisCreator{
		BaseCommand:       *cor.NewBaseCommand(name),
		generativeAIModel: generativeAIModel,
		template:          template,
	}

	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))

	return out
}

// GenerateParams creates the map of dynamic data injected into the
// instruction template.
func (t *BrandAnalysisCreator) GenerateParams(_ cor.Context) map[string]interface{} {
	params := make(map[string]interface{})

	// Few-shot example: a complete, well-formed response instance guides
	// the model toward the expected structure.
	exampleAnalysis, _ := json.Marshal(model.GetExampleAnalysis())
	params["EXAMPLE_JSON"] = string(exampleAnalysis)
	return params
}

// Execute builds the multimodal request and sends it to the model.
func (t *BrandAnalysisCreator) Execute(context cor.Context) {
	record := context.Get(t.GetInputParam()).(*model.UploadRecord)

	var buffer bytes.Buffer
	err := t.template.Execute(&buffer, t.GenerateParams(context))
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to execute instruction template: %w", err))
		return
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buffer.String()},
				{FileData: &genai.FileData{
					FileURI:  record.Locator,
					MIMEType: videoMIMEType,
				}},
			},
		},
	}

	out, err := cloud.GenerateMultiModalResponse(
		context.GetContext(),
		t.geminiInputTokenCounter,
		t.geminiOutputTokenCounter,
		t.generativeAIModel,
		contents)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("gemini request failed: %w", err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), out)
}
