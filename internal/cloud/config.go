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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, along with the clients used to talk to Google
// Cloud services.
//
// Structs:
//   - Storage: Configuration for the Google Cloud Storage upload bucket.
//   - PromptTemplates: Text templates for prompts sent to the GenAI model.
//   - VertexAiLLMModel: Configuration for a Vertex AI Large Language Model.
//   - Config: The top-level struct that aggregates all other configuration.
//
// Functions:
//   - NewConfig: Constructor that initializes a Config with empty maps.
package cloud

import (
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// Environment variables that override the TOML configuration. The service
// refuses to start when neither the TOML files nor the environment provide
// a bucket name and project ID.
const (
	EnvBucketName = "GCP_BUCKET_NAME"
	EnvProjectId  = "GCP_PROJECT"
)

// DefaultMaxUploadBytes is the client-side ceiling for a single video
// upload. Blobs larger than this are rejected before any storage call.
const DefaultMaxUploadBytes int64 = 200 << 20 // 200 MB

// DefaultSafetySettings defines the default content safety thresholds for
// GenAI models. Creator videos are trusted input, so every category is
// configured to pass through without being blocked.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// Storage represents the configuration for the upload bucket.
type Storage struct {
	UploadBucket string `toml:"upload_bucket"` // The bucket that receives user video uploads.
}

// PromptTemplates holds the instruction templates sent to the GenAI model.
// Templates are loaded once at startup and never mutated.
type PromptTemplates struct {
	BrandingPrompt string `toml:"branding"` // The brand-compatibility analysis instruction template.
}

// VertexAiLLMModel represents the configuration for a Vertex AI large
// language model (LLM).
type VertexAiLLMModel struct {
	Model              string  `toml:"model"`               // The name of the Vertex AI LLM.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the LLM.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the LLM.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the LLM.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the LLM.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the LLM output.
	OutputFormat       string  `toml:"output_format"`       // The desired response MIME type (application/json).
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the LLM in requests per second.
}

// Config represents the overall configuration for the application, loaded
// from TOML files with environment-variable overrides for the values that
// must never be baked into an image.
type Config struct {
	Application struct {
		Name                      string `toml:"name"`                         // The name of the application.
		GoogleProjectId           string `toml:"google_project_id"`            // The Google Cloud project ID.
		GoogleLocation            string `toml:"location"`                     // The Google Cloud location.
		SignerServiceAccountEmail string `toml:"signer_service_account_email"` // Service account used to sign preview URLs.
		MaxUploadBytes            int64  `toml:"max_upload_bytes"`             // Upload size ceiling; defaults to 200 MB.
	} `toml:"application"`
	Storage         Storage                     `toml:"storage"`          // Upload bucket configuration.
	PromptTemplates PromptTemplates             `toml:"prompt_templates"` // Instruction templates.
	AgentModels     map[string]VertexAiLLMModel `toml:"agent_models"`     // Vertex AI LLM models keyed by a logical name (e.g., "branding").
}

// ConfigurationError reports required settings that are absent after the
// TOML files and environment overrides have been merged. It is fatal: the
// application refuses to serve anything but the liveness check without a
// bucket and project.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// NewConfig is a constructor function that creates a new, initialized
// Config instance with its map fields ready for the TOML decoder.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]VertexAiLLMModel),
	}
}

// ApplyEnvOverrides merges environment-provided values over the TOML
// configuration. The bucket and project environment variables take
// precedence so a Cloud Run deployment can configure them without
// shipping a config file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvBucketName); v != "" {
		c.Storage.UploadBucket = v
	}
	if v := os.Getenv(EnvProjectId); v != "" {
		c.Application.GoogleProjectId = v
	}
	if c.Application.MaxUploadBytes <= 0 {
		c.Application.MaxUploadBytes = DefaultMaxUploadBytes
	}
}

// Validate checks the merged configuration for the values the service
// cannot run without.
//
// Outputs:
//   - error: A *ConfigurationError naming every missing setting, or nil.
func (c *Config) Validate() error {
	var missing []string
	if c.Storage.UploadBucket == "" {
		missing = append(missing, EnvBucketName)
	}
	if c.Application.GoogleProjectId == "" {
		missing = append(missing, EnvProjectId)
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}
