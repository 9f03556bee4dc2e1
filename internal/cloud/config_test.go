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

package cloud

import (
	"errors"
	"testing"

	"github.com/zeebo/assert"
)

func TestValidateReportsMissingSettings(t *testing.T) {
	config := NewConfig()

	err := config.Validate()
	assert.Error(t, err)

	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.DeepEqual(t, []string{EnvBucketName, EnvProjectId}, configErr.Missing)
}

func TestValidatePassesWithRequiredSettings(t *testing.T) {
	config := NewConfig()
	config.Storage.UploadBucket = "uploads"
	config.Application.GoogleProjectId = "project"

	assert.NoError(t, config.Validate())
}

func TestApplyEnvOverridesTakePrecedence(t *testing.T) {
	t.Setenv(EnvBucketName, "env-bucket")
	t.Setenv(EnvProjectId, "env-project")

	config := NewConfig()
	config.Storage.UploadBucket = "toml-bucket"
	config.Application.GoogleProjectId = "toml-project"
	config.ApplyEnvOverrides()

	assert.Equal(t, "env-bucket", config.Storage.UploadBucket)
	assert.Equal(t, "env-project", config.Application.GoogleProjectId)
}

func TestApplyEnvOverridesDefaultsUploadLimit(t *testing.T) {
	config := NewConfig()
	config.ApplyEnvOverrides()

	assert.Equal(t, DefaultMaxUploadBytes, config.Application.MaxUploadBytes)
}
