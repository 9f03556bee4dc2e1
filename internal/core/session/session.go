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

// Package session tracks per-user analysis sessions in memory. A session
// moves through a small state machine as the user uploads a video and
// requests an analysis; nothing is persisted, and restarting the process
// discards all sessions.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateNoUpload  State = "no_upload" // Fresh session, nothing stored.
	StateUploading State = "uploading" // An upload is in flight.
	StateUploaded  State = "uploaded"  // A video is stored and analyzable.
	StateAnalyzing State = "analyzing" // An analysis request is in flight.
	StateDisplayed State = "displayed" // An analysis is available to view.
	StateError     State = "error"     // The last operation failed.
)

// TransitionError reports an operation attempted from a state that does
// not permit it.
type TransitionError struct {
	From State
	Op   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s in state %q", e.Op, e.From)
}

// Snapshot is a read-only view of a session at one point in time.
type Snapshot struct {
	ID        string               `json:"id"`
	State     State                `json:"state"`
	Upload    *model.UploadRecord  `json:"upload,omitempty"`
	Analysis  *model.BrandAnalysis `json:"analysis,omitempty"`
	LastError string               `json:"last_error,omitempty"`
}

// Session is one user's analysis workspace. At most one upload and one
// analysis exist at a time; a new upload supersedes both.
type Session struct {
	id string

	mu        sync.Mutex
	state     State
	upload    *model.UploadRecord
	analysis  *model.BrandAnalysis
	lastError string
}

func newSession() *Session {
	return &Session{
		id:    uuid.NewString(),
		state: StateNoUpload,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// BeginUpload marks an upload as in flight. The previous upload and
// analysis stay visible until the new upload succeeds: an upload that
// fails must not lose the data the user already had.
func (s *Session) BeginUpload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateUploading || s.state == StateAnalyzing {
		return &TransitionError{From: s.state, Op: "upload"}
	}
	s.state = StateUploading
	s.lastError = ""
	return nil
}

// CompleteUpload stores the new upload record. Any prior analysis is
// discarded: it described the superseded video.
func (s *Session) CompleteUpload(record *model.UploadRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload = record
	s.analysis = nil
	s.state = StateUploaded
}

// FailUpload records an upload failure. The previously stored upload, if
// any, is left untouched.
func (s *Session) FailUpload(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.lastError = err.Error()
}

// BeginAnalysis marks an analysis as in flight. A stored upload is
// required; after a failure the session may retry from the error state as
// long as the upload survived.
func (s *Session) BeginAnalysis() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upload == nil {
		return &TransitionError{From: s.state, Op: "analyze"}
	}
	if s.state == StateUploading || s.state == StateAnalyzing {
		return &TransitionError{From: s.state, Op: "analyze"}
	}
	s.state = StateAnalyzing
	s.lastError = ""
	return nil
}

// CompleteAnalysis stores the finished analysis and makes it viewable.
func (s *Session) CompleteAnalysis(analysis *model.BrandAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = analysis
	s.state = StateDisplayed
}

// FailAnalysis records an analysis failure. The upload survives so the
// user can retry without re-uploading.
func (s *Session) FailAnalysis(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.lastError = err.Error()
}

// Upload returns the stored upload record, or nil.
func (s *Session) Upload() *model.UploadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload
}

// Analysis returns the stored analysis, or nil.
func (s *Session) Analysis() *model.BrandAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

// Snapshot returns a point-in-time view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.id,
		State:     s.state,
		Upload:    s.upload,
		Analysis:  s.analysis,
		LastError: s.lastError,
	}
}

// Manager holds the live sessions, keyed by ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager is the constructor for the session Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns it.
func (m *Manager) Create() *Session {
	s := newSession()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
	return s
}

// Get returns the session with the given ID, or false when no such
// session exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}
