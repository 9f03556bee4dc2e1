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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/render"
)

func TestBuildChartDataThemesKeepModelOrder(t *testing.T) {
	analysis := model.GetExampleAnalysis()
	analysis.Themes = []string{"zero waste", "cooking"}

	data := render.BuildChartData(analysis)

	require.Len(t, data.Themes, 2)
	assert.Equal(t, "zero waste", data.Themes[0].Theme)
	assert.Equal(t, "cooking", data.Themes[1].Theme)
}

func TestBuildChartDataRadarHasFiveAxes(t *testing.T) {
	data := render.BuildChartData(model.GetExampleAnalysis())

	require.Len(t, data.Radar, 5)
	for _, axis := range data.Radar {
		assert.GreaterOrEqual(t, axis.Value, float32(0))
		assert.LessOrEqual(t, axis.Value, float32(1))
	}
}

func TestBuildChartDataAudienceSlicesAreEqual(t *testing.T) {
	data := render.BuildChartData(model.GetExampleAnalysis())

	require.Len(t, data.Audience, 3)
	for _, slice := range data.Audience {
		assert.Equal(t, 1, slice.Value)
	}
	assert.True(t, strings.HasPrefix(data.Audience[0].Label, "Age: "))
	assert.True(t, strings.HasPrefix(data.Audience[1].Label, "Gender: "))
	assert.True(t, strings.HasPrefix(data.Audience[2].Label, "Location: "))
}

func TestRenderChartPageProducesHTML(t *testing.T) {
	var buf bytes.Buffer
	err := render.RenderChartPage(&buf, model.GetExampleAnalysis())
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "Engagement Profile")
	assert.Contains(t, page, "Content Themes")
	assert.Contains(t, page, "Estimated Audience")
}

func TestSortedNichesDoesNotMutate(t *testing.T) {
	analysis := model.GetExampleAnalysis()
	analysis.MarketNiches = []string{"zeta", "alpha"}

	sorted := render.SortedNiches(analysis)

	assert.Equal(t, []string{"alpha", "zeta"}, sorted)
	assert.Equal(t, []string{"zeta", "alpha"}, analysis.MarketNiches)
}
