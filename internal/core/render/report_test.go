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

package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/render"
)

func TestGenerateReportProducesPDF(t *testing.T) {
	doc, err := render.GenerateReport(model.GetExampleAnalysis())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateReportIsDeterministic(t *testing.T) {
	analysis := model.GetExampleAnalysis()

	first, err := render.GenerateReport(analysis)
	require.NoError(t, err)
	second, err := render.GenerateReport(analysis)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateReportHandlesEmptyBrandMatches(t *testing.T) {
	analysis := model.GetExampleAnalysis()
	analysis.BrandMatches = nil

	doc, err := render.GenerateReport(analysis)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
