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

// Package schema defines the response schema the model endpoint is asked
// to conform to when producing a brand analysis, plus the post-parse
// validation that backs it up. The schema is built once at process start
// and never mutated; its field names are the contract shared with
// model.BrandAnalysis.
package schema

import "google.golang.org/genai"

// BrandAnalysis returns the response schema for the brand-compatibility
// analysis. Passing this as the generation config's ResponseSchema
// constrains the endpoint's output shape, which keeps the downstream
// parsing a plain unmarshal.
func BrandAnalysis() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"video_url": {
				Type:        genai.TypeString,
				Description: "URL of the analyzed video.",
			},
			"temas_abordados": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Main themes the creator covers in the video.",
			},
			"estilo_conteudo": {
				Type:        genai.TypeString,
				Description: "Style of the creator's content (e.g. humorous, informative).",
			},
			"publico_alvo_estimado": {
				Type:        genai.TypeObject,
				Description: "Estimated target audience of the creator.",
				Properties: map[string]*genai.Schema{
					"faixa_etaria": {
						Type:        genai.TypeString,
						Description: "Estimated age range of the audience.",
					},
					"genero": {
						Type:        genai.TypeString,
						Description: "Predominant gender of the audience (e.g. male, female, mixed).",
					},
					"interesses": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Main interests of the audience.",
					},
					"localizacao_geografica": {
						Type:        genai.TypeString,
						Description: "Predominant geographic location of the audience.",
					},
				},
				Required: []string{"faixa_etaria", "genero", "interesses", "localizacao_geografica"},
			},
			"engajamento": {
				Type:        genai.TypeString,
				Description: "Description of the audience's engagement with the creator's content.",
			},
			"valores_e_tom": {
				Type:        genai.TypeObject,
				Description: "Values and tone of the creator's content.",
				Properties: map[string]*genai.Schema{
					"valores": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Values the creator appears to promote.",
					},
					"tom": {
						Type:        genai.TypeString,
						Description: "Overall tone of the creator's content (e.g. formal, informal).",
					},
				},
				Required: []string{"valores", "tom"},
			},
			"plataformas_principais": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Main platforms where the creator is active.",
			},
			"colaboracoes_anteriores": {
				Type:        genai.TypeString,
				Description: "Description of the creator's prior brand collaborations ('Nenhuma' if none).",
			},
			"nichos_de_mercado": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Market niches most relevant to the creator.",
			},
			"marcas_match": {
				Type:        genai.TypeArray,
				Description: "Types of brands that would be a good match for the creator.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"tipo_marca": {
							Type:        genai.TypeString,
							Description: "Type of brand (e.g. women's fashion, vegan beauty products).",
						},
						"exemplos": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Examples of specific brands.",
						},
						"justificativa": {
							Type:        genai.TypeString,
							Description: "Justification for the match with the creator.",
						},
					},
					Required: []string{"tipo_marca", "exemplos", "justificativa"},
				},
			},
			"tipos_de_colaboracao": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Most effective collaboration formats for the creator.",
			},
			"consideracoes_imagem_marca": {
				Type:        genai.TypeString,
				Description: "Considerations about the creator's image for a positive brand match.",
			},
		},
		Required: []string{
			"temas_abordados",
			"estilo_conteudo",
			"publico_alvo_estimado",
			"engajamento",
			"valores_e_tom",
			"plataformas_principais",
			"colaboracoes_anteriores",
			"nichos_de_mercado",
			"marcas_match",
			"tipos_de_colaboracao",
			"consideracoes_imagem_marca",
		},
	}
}
