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

// Package model defines the core data structures for the application.
// These objects live only for the duration of one user session: an upload
// produces an UploadRecord, an analysis produces a BrandAnalysis, and a
// new upload supersedes both. Nothing here is persisted.
//
// The JSON tags on BrandAnalysis mirror the response schema the model
// endpoint is asked to conform to; the field names are the upstream
// schema's (Portuguese) names and must not drift from it.
package model

import "time"

// TargetAudience describes the estimated audience of the creator's
// content.
type TargetAudience struct {
	AgeRange  string   `json:"faixa_etaria"`           // Estimated age range of the audience.
	Gender    string   `json:"genero"`                 // Predominant gender (e.g. male, female, mixed).
	Interests []string `json:"interesses"`             // Main audience interests.
	Location  string   `json:"localizacao_geografica"` // Predominant geographic location.
}

// ValuesAndTone captures the values the creator promotes and the overall
// tone of the content.
type ValuesAndTone struct {
	Values []string `json:"valores"` // Values the creator appears to promote.
	Tone   string   `json:"tom"`     // Overall tone (e.g. formal, informal).
}

// BrandMatch is one recommended brand pairing for the creator.
type BrandMatch struct {
	BrandType     string   `json:"tipo_marca"`    // Type of brand (e.g. vegan beauty products).
	Examples      []string `json:"exemplos"`      // Example brands of that type.
	Justification string   `json:"justificativa"` // Why the pairing works.
}

// BrandAnalysis is the structured brand-compatibility analysis returned by
// the model endpoint for one uploaded video. One instance exists per
// session at most; it is discarded when a new video is uploaded.
type BrandAnalysis struct {
	VideoURL                 string         `json:"video_url,omitempty"`        // Public URL of the analyzed video, filled in by the adapter.
	Themes                   []string       `json:"temas_abordados"`            // Main themes covered in the video, in the model's order.
	ContentStyle             string         `json:"estilo_conteudo"`            // Style of the content (e.g. humorous, informative).
	TargetAudience           TargetAudience `json:"publico_alvo_estimado"`      // Estimated audience block.
	Engagement               string         `json:"engajamento"`                // Description of audience engagement.
	ValuesAndTone            ValuesAndTone  `json:"valores_e_tom"`              // Values and tone block.
	PrimaryPlatforms         []string       `json:"plataformas_principais"`     // Platforms where the creator is active.
	PriorCollaborations      string         `json:"colaboracoes_anteriores"`    // Description of prior brand collaborations.
	MarketNiches             []string       `json:"nichos_de_mercado"`          // Most relevant market niches.
	BrandMatches             []*BrandMatch  `json:"marcas_match"`               // Recommended brand pairings.
	CollaborationTypes       []string       `json:"tipos_de_colaboracao"`       // Most effective collaboration formats.
	BrandImageConsiderations string         `json:"consideracoes_imagem_marca"` // Image considerations for a positive match.
}

// UploadRecord identifies one uploaded video in durable storage. The
// locator (gs://bucket/key) is what the analysis request references; the
// public URL is what the browser plays.
type UploadRecord struct {
	PublicURL  string    `json:"public_url"`  // Direct-access URL for the stored object.
	Locator    string    `json:"locator"`     // Storage locator in the form gs://{bucket}/{key}.
	Bucket     string    `json:"bucket"`      // The bucket holding the object.
	ObjectKey  string    `json:"object_key"`  // The object key within the bucket.
	UploadedAt time.Time `json:"uploaded_at"` // Server time of the upload.
}
