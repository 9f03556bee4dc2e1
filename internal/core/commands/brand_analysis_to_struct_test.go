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

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmatch/brand-media-analyzer/internal/core/commands"
	"github.com/brandmatch/brand-media-analyzer/internal/core/cor"
	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	test "github.com/brandmatch/brand-media-analyzer/internal/testutil"
)

// newChainContext builds a chain context carrying the raw model response
// and the upload record the parser enriches from.
func newChainContext(raw string) cor.Context {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, raw)
	chainCtx.Add(commands.UploadRecordContextKey, &model.UploadRecord{
		PublicURL: "https://storage.googleapis.com/test-uploads/uploads/20250314_092653_clip.mp4",
		Locator:   "gs://test-uploads/uploads/20250314_092653_clip.mp4",
	})
	return chainCtx
}

func TestToStructParsesBareJSON(t *testing.T) {
	cmd := commands.NewBrandAnalysisToStruct("to_struct")
	chainCtx := newChainContext(test.GetTestAnalysisResponseText())

	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	analysis, ok := chainCtx.Get(cmd.GetOutputParam()).(*model.BrandAnalysis)
	require.True(t, ok)
	assert.Equal(t, []string{"vegan cooking", "sustainable living"}, analysis.Themes)
	assert.Equal(t, "25-34", analysis.TargetAudience.AgeRange)
	assert.Equal(t, "https://storage.googleapis.com/test-uploads/uploads/20250314_092653_clip.mp4", analysis.VideoURL)
}

func TestToStructParsesFencedJSON(t *testing.T) {
	cmd := commands.NewBrandAnalysisToStruct("to_struct")
	chainCtx := newChainContext(test.GetTestAnalysisResponseFenced())

	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	analysis, ok := chainCtx.Get(cmd.GetOutputParam()).(*model.BrandAnalysis)
	require.True(t, ok)
	assert.Len(t, analysis.BrandMatches, 1)
	assert.Equal(t, "vegan food products", analysis.BrandMatches[0].BrandType)
}

func TestToStructRejectsNonJSONResponse(t *testing.T) {
	cmd := commands.NewBrandAnalysisToStruct("to_struct")
	chainCtx := newChainContext("I could not analyze this video.")

	cmd.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(cmd.GetOutputParam()))
}

func TestToStructRejectsIncompleteResponse(t *testing.T) {
	cmd := commands.NewBrandAnalysisToStruct("to_struct")
	chainCtx := newChainContext(`{"estilo_conteudo": "informative"}`)

	cmd.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(cmd.GetOutputParam()))
}
