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

// Package test provides utility functions and mock data to support the
// application's test suite: a cached test configuration and canned model
// responses for the analysis pipeline.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/brandmatch/brand-media-analyzer/internal/cloud"
)

// StateManager caches the test configuration so it is loaded from the
// TOML files only once per test run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. Convenience to reduce
// boilerplate error checking in tests.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// GetTestAnalysisResponseText returns a model response as it would arrive
// from the endpoint: a complete, schema-conformant analysis in raw JSON.
func GetTestAnalysisResponseText() string {
	return `{
  "temas_abordados": ["vegan cooking", "sustainable living"],
  "estilo_conteudo": "informative with a humorous edge",
  "publico_alvo_estimado": {
    "faixa_etaria": "25-34",
    "genero": "mixed",
    "interesses": ["plant-based food", "zero-waste lifestyle"],
    "localizacao_geografica": "urban Brazil"
  },
  "engajamento": "High comment activity with recipe questions.",
  "valores_e_tom": {
    "valores": ["sustainability", "accessibility"],
    "tom": "informal"
  },
  "plataformas_principais": ["TikTok", "Instagram Reels"],
  "colaboracoes_anteriores": "One sponsored series with a local organic grocery chain.",
  "nichos_de_mercado": ["plant-based food", "eco-friendly kitchenware"],
  "marcas_match": [
    {
      "tipo_marca": "vegan food products",
      "exemplos": ["NotCo", "Fazenda Futuro"],
      "justificativa": "Product placement feels native to the recipe format."
    }
  ],
  "tipos_de_colaboracao": ["sponsored recipe videos", "affiliate discount codes"],
  "consideracoes_imagem_marca": "Partner brands should have verifiable sustainability claims."
}`
}

// GetTestAnalysisResponseFenced returns the same response wrapped in a
// markdown code fence, as the endpoint occasionally produces.
func GetTestAnalysisResponseFenced() string {
	return "```json\n" + GetTestAnalysisResponseText() + "\n```"
}

// SetupOS points the configuration loader at the test configuration files
// (configs/.env.test.toml).
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. The
// configuration is loaded once and cached for subsequent calls.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		config.ApplyEnvOverrides()
		state.config = config
	}
	return state.config
}
