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

package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/schema"
)

func TestValidateCompleteAnalysis(t *testing.T) {
	assert.NoError(t, schema.Validate(model.GetExampleAnalysis()))
}

func TestValidateReportsMissingFields(t *testing.T) {
	analysis := model.GetExampleAnalysis()
	analysis.Themes = nil
	analysis.TargetAudience.Gender = ""

	err := schema.Validate(analysis)
	require.Error(t, err)

	var validationErr *schema.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Missing, "temas_abordados")
	assert.Contains(t, validationErr.Missing, "publico_alvo_estimado.genero")
}

func TestValidateReportsIncompleteBrandMatch(t *testing.T) {
	analysis := model.GetExampleAnalysis()
	analysis.BrandMatches[0].Justification = ""

	err := schema.Validate(analysis)
	require.Error(t, err)

	var validationErr *schema.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Missing, "marcas_match[0].justificativa")
}

func TestResponseSchemaDoesNotRequireVideoURL(t *testing.T) {
	// The video URL is stamped on server-side after parsing, so the model
	// must not be required to produce it.
	assert.NotContains(t, schema.BrandAnalysis().Required, "video_url")
}
