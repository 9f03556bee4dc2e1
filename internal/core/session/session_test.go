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

package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/session"
)

func newUploadRecord(key string) *model.UploadRecord {
	return &model.UploadRecord{
		Locator:   "gs://test-uploads/" + key,
		PublicURL: "https://storage.googleapis.com/test-uploads/" + key,
		Bucket:    "test-uploads",
		ObjectKey: key,
	}
}

func TestNewSessionStartsEmpty(t *testing.T) {
	m := session.NewManager()
	s := m.Create()

	snap := s.Snapshot()
	assert.Equal(t, session.StateNoUpload, snap.State)
	assert.Nil(t, snap.Upload)
	assert.Nil(t, snap.Analysis)
	assert.NotEmpty(t, snap.ID)
}

func TestManagerGet(t *testing.T) {
	m := session.NewManager()
	s := m.Create()

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("nope")
	assert.False(t, ok)
}

func TestUploadLifecycle(t *testing.T) {
	s := session.NewManager().Create()

	require.NoError(t, s.BeginUpload())
	assert.Equal(t, session.StateUploading, s.Snapshot().State)

	s.CompleteUpload(newUploadRecord("a.mp4"))
	snap := s.Snapshot()
	assert.Equal(t, session.StateUploaded, snap.State)
	assert.Equal(t, "a.mp4", snap.Upload.ObjectKey)
}

func TestFailedFirstUploadKeepsNoRecord(t *testing.T) {
	s := session.NewManager().Create()

	require.NoError(t, s.BeginUpload())
	s.FailUpload(errors.New("bucket unreachable"))

	snap := s.Snapshot()
	assert.Equal(t, session.StateError, snap.State)
	assert.Nil(t, snap.Upload)
	assert.Equal(t, "bucket unreachable", snap.LastError)
}

func TestFailedReuploadKeepsPriorUpload(t *testing.T) {
	s := session.NewManager().Create()
	require.NoError(t, s.BeginUpload())
	s.CompleteUpload(newUploadRecord("a.mp4"))

	require.NoError(t, s.BeginUpload())
	s.FailUpload(errors.New("write interrupted"))

	// The user still has the first video to work with.
	snap := s.Snapshot()
	assert.Equal(t, session.StateError, snap.State)
	require.NotNil(t, snap.Upload)
	assert.Equal(t, "a.mp4", snap.Upload.ObjectKey)
}

func TestNewUploadSupersedesAnalysis(t *testing.T) {
	s := session.NewManager().Create()
	require.NoError(t, s.BeginUpload())
	s.CompleteUpload(newUploadRecord("a.mp4"))
	require.NoError(t, s.BeginAnalysis())
	s.CompleteAnalysis(model.GetExampleAnalysis())

	require.NoError(t, s.BeginUpload())
	s.CompleteUpload(newUploadRecord("b.mp4"))

	snap := s.Snapshot()
	assert.Equal(t, session.StateUploaded, snap.State)
	assert.Equal(t, "b.mp4", snap.Upload.ObjectKey)
	assert.Nil(t, snap.Analysis)
}

func TestAnalyzeRequiresUpload(t *testing.T) {
	s := session.NewManager().Create()

	err := s.BeginAnalysis()
	require.Error(t, err)

	var transitionErr *session.TransitionError
	assert.True(t, errors.As(err, &transitionErr))
}

func TestAnalysisLifecycle(t *testing.T) {
	s := session.NewManager().Create()
	require.NoError(t, s.BeginUpload())
	s.CompleteUpload(newUploadRecord("a.mp4"))

	require.NoError(t, s.BeginAnalysis())
	assert.Equal(t, session.StateAnalyzing, s.Snapshot().State)

	s.CompleteAnalysis(model.GetExampleAnalysis())
	snap := s.Snapshot()
	assert.Equal(t, session.StateDisplayed, snap.State)
	assert.NotNil(t, snap.Analysis)
}

func TestFailedAnalysisAllowsRetry(t *testing.T) {
	s := session.NewManager().Create()
	require.NoError(t, s.BeginUpload())
	s.CompleteUpload(newUploadRecord("a.mp4"))

	require.NoError(t, s.BeginAnalysis())
	s.FailAnalysis(errors.New("model quota exhausted"))

	snap := s.Snapshot()
	assert.Equal(t, session.StateError, snap.State)
	require.NotNil(t, snap.Upload)

	// The upload survived, so a second attempt is allowed.
	assert.NoError(t, s.BeginAnalysis())
}

func TestConcurrentOperationsAreRejected(t *testing.T) {
	s := session.NewManager().Create()
	require.NoError(t, s.BeginUpload())

	assert.Error(t, s.BeginUpload())
	assert.Error(t, s.BeginAnalysis())
}
