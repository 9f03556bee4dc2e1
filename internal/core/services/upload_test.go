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
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/zeebo/assert"
	"google.golang.org/api/googleapi"
)

func TestObjectKeyFormat(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	key := ObjectKey(at, "clip.mp4")
	assert.Equal(t, "uploads/20250314_092653_clip.mp4", key)

	pattern := regexp.MustCompile(`^uploads/\d{8}_\d{6}_clip\.mp4$`)
	assert.True(t, pattern.MatchString(key))
}

func TestObjectKeyStripsClientPath(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	key := ObjectKey(at, "../secrets/clip.mp4")
	assert.Equal(t, "uploads/20250314_092653_clip.mp4", key)
}

func TestLocatorAndPublicURL(t *testing.T) {
	assert.Equal(t, "gs://my-bucket/uploads/x.mp4", Locator("my-bucket", "uploads/x.mp4"))
	assert.Equal(t, "https://storage.googleapis.com/my-bucket/uploads/x.mp4", PublicURL("my-bucket", "uploads/x.mp4"))
}

func TestClassifyStorageError(t *testing.T) {
	cases := []struct {
		code   int
		reason string
	}{
		{http.StatusForbidden, "permission"},
		{http.StatusUnauthorized, "permission"},
		{http.StatusTooManyRequests, "quota"},
		{http.StatusInternalServerError, "unreachable"},
	}

	for _, tc := range cases {
		err := classifyStorageError("write", fmt.Errorf("request failed: %w", &googleapi.Error{Code: tc.code}))
		assert.Equal(t, tc.reason, err.Reason)
		assert.Equal(t, "write", err.Op)
	}

	// Network failures carry no API status and default to unreachable.
	err := classifyStorageError("write", fmt.Errorf("dial tcp: connection refused"))
	assert.Equal(t, "unreachable", err.Reason)
}
