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

// This file defines the command that turns the model's raw text response
// into a validated BrandAnalysis.
//
// Logic Flow:
//  1. It receives the raw response text from the preceding command.
//  2. It extracts the JSON object from the text, tolerating stray prose
//     around the braces.
//  3. It unmarshals the object into a model.BrandAnalysis.
//  4. It validates the parsed analysis against the required schema fields.
//  5. It fills in the analyzed video's public URL from the UploadRecord
//     and places the finished analysis into the context.
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brandmatch/brand-media-analyzer/internal/core/cor"
	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/schema"
)

// BrandAnalysisToStruct is a command that parses and validates the raw
// model response produced by BrandAnalysisCreator.
type BrandAnalysisToStruct struct {
	cor.BaseCommand
}

// NewBrandAnalysisToStruct is the constructor for the BrandAnalysisToStruct
// command.
func NewBrandAnalysisToStruct(name string) *BrandAnalysisToStruct {
	return &BrandAnalysisToStruct{BaseCommand: *cor.NewBaseCommand(name)}
}

// extractJSON pulls the outermost JSON object out of a model response.
// Schema-constrained generation should yield bare JSON, but responses
// occasionally arrive wrapped in prose or markdown, so fall back to the
// text between the first '{' and the last '}'.
func extractJSON(in string) (string, error) {
	trimmed := strings.TrimSpace(in)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in model response")
	}
	return trimmed[start : end+1], nil
}

// Execute parses the raw response into a validated BrandAnalysis.
func (t *BrandAnalysisToStruct) Execute(context cor.Context) {
	raw := context.Get(t.GetInputParam()).(string)

	payload, err := extractJSON(raw)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	analysis := &model.BrandAnalysis{}
	if err := json.Unmarshal([]byte(payload), analysis); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to unmarshal analysis response: %w", err))
		return
	}

	if err := schema.Validate(analysis); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	// The analyzed video's URL is known to the server, not the model, so it
	// is stamped on after the fact.
	if record, ok := context.Get(UploadRecordContextKey).(*model.UploadRecord); ok {
		analysis.VideoURL = record.PublicURL
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), analysis)
}
