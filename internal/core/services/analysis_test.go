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

package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zeebo/assert"
	"google.golang.org/genai"

	"github.com/brandmatch/brand-media-analyzer/internal/core/schema"
)

func TestClassifyAnalysisErrorPassesValidationThrough(t *testing.T) {
	in := &schema.ValidationError{Missing: []string{"temas_abordados"}}
	out := classifyAnalysisError(fmt.Errorf("pipeline: %w", in))

	var validationErr *schema.ValidationError
	assert.True(t, errors.As(out, &validationErr))
	assert.DeepEqual(t, []string{"temas_abordados"}, validationErr.Missing)
}

func TestClassifyAnalysisErrorAPIReasons(t *testing.T) {
	cases := []struct {
		code   int
		reason string
	}{
		{429, "quota"},
		{403, "permission"},
		{401, "permission"},
		{500, "model"},
	}

	for _, tc := range cases {
		out := classifyAnalysisError(fmt.Errorf("request: %w", genai.APIError{Code: tc.code}))
		var analysisErr *AnalysisError
		assert.True(t, errors.As(out, &analysisErr))
		assert.Equal(t, tc.reason, analysisErr.Reason)
	}
}

func TestClassifyAnalysisErrorDefaultsToModel(t *testing.T) {
	out := classifyAnalysisError(errors.New("no JSON object found in model response"))

	var analysisErr *AnalysisError
	assert.True(t, errors.As(out, &analysisErr))
	assert.Equal(t, "model", analysisErr.Reason)
}
