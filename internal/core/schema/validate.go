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

// Package schema defines the analysis response schema. This file holds
// the post-parse validation: the endpoint is asked for schema-conformant
// output, but conformance is verified here rather than trusted, so a
// response with missing required fields surfaces as a ValidationError
// instead of propagating half-empty data into the views.
package schema

import (
	"fmt"
	"strings"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
)

// ValidationError reports required schema fields that are absent from a
// parsed analysis. It is distinct from a parse failure: the payload was
// valid JSON but did not satisfy the schema's required set.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("analysis response missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks a parsed analysis against the schema's required fields.
// Field names in the returned error use the wire names so they can be
// matched against the schema definition directly.
//
// Outputs:
//   - error: A *ValidationError naming every missing field, or nil.
func Validate(a *model.BrandAnalysis) error {
	var missing []string

	if len(a.Themes) == 0 {
		missing = append(missing, "temas_abordados")
	}
	if a.ContentStyle == "" {
		missing = append(missing, "estilo_conteudo")
	}
	if a.TargetAudience.AgeRange == "" {
		missing = append(missing, "publico_alvo_estimado.faixa_etaria")
	}
	if a.TargetAudience.Gender == "" {
		missing = append(missing, "publico_alvo_estimado.genero")
	}
	if len(a.TargetAudience.Interests) == 0 {
		missing = append(missing, "publico_alvo_estimado.interesses")
	}
	if a.TargetAudience.Location == "" {
		missing = append(missing, "publico_alvo_estimado.localizacao_geografica")
	}
	if a.Engagement == "" {
		missing = append(missing, "engajamento")
	}
	if len(a.ValuesAndTone.Values) == 0 {
		missing = append(missing, "valores_e_tom.valores")
	}
	if a.ValuesAndTone.Tone == "" {
		missing = append(missing, "valores_e_tom.tom")
	}
	if len(a.PrimaryPlatforms) == 0 {
		missing = append(missing, "plataformas_principais")
	}
	if a.PriorCollaborations == "" {
		missing = append(missing, "colaboracoes_anteriores")
	}
	if len(a.MarketNiches) == 0 {
		missing = append(missing, "nichos_de_mercado")
	}
	if len(a.BrandMatches) == 0 {
		missing = append(missing, "marcas_match")
	}
	for i, match := range a.BrandMatches {
		if match.BrandType == "" {
			missing = append(missing, fmt.Sprintf("marcas_match[%d].tipo_marca", i))
		}
		if len(match.Examples) == 0 {
			missing = append(missing, fmt.Sprintf("marcas_match[%d].exemplos", i))
		}
		if match.Justification == "" {
			missing = append(missing, fmt.Sprintf("marcas_match[%d].justificativa", i))
		}
	}
	if len(a.CollaborationTypes) == 0 {
		missing = append(missing, "tipos_de_colaboracao")
	}
	if a.BrandImageConsiderations == "" {
		missing = append(missing, "consideracoes_imagem_marca")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
