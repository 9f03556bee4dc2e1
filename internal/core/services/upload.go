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

// Package services holds the application services that sit between the
// HTTP handlers and the cloud clients. This file implements the upload
// service: it streams a video into the upload bucket under a timestamped
// key and returns the record the rest of the session works from.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
)

// objectKeyTimeFormat is the timestamp prefix format for uploaded object
// keys (YYYYMMDD_HHMMSS).
const objectKeyTimeFormat = "20060102_150405"

// previewURLLifetime bounds how long a signed preview link stays valid.
const previewURLLifetime = 15 * time.Minute

// UploadError wraps a storage failure with the operation that produced it.
// The reason string is one of "permission", "quota", or "unreachable" so
// the HTTP layer can report a stable category without parsing messages.
type UploadError struct {
	Op     string // The storage operation that failed (e.g. "write", "sign").
	Reason string // Stable failure category.
	Err    error  // The underlying error.
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s failed (%s): %v", e.Op, e.Reason, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// classifyStorageError maps a storage API failure onto a stable reason
// category.
func classifyStorageError(op string, err error) *UploadError {
	var apiErr *googleapi.Error
	reason := "unreachable"
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			reason = "permission"
		case http.StatusTooManyRequests:
			reason = "quota"
		}
	}
	return &UploadError{Op: op, Reason: reason, Err: err}
}

// UploadService stores user videos in the configured GCS bucket.
type UploadService struct {
	Storage     *storage.Client                   // GCS client used for writes.
	IAM         *credentials.IamCredentialsClient // IAM client used to sign preview URLs.
	Bucket      string                            // Target upload bucket.
	SignerEmail string                            // Service account that signs preview URLs.

	// now is injectable so tests can pin the timestamped object keys.
	now func() time.Time
}

// NewUploadService is the constructor for the UploadService.
func NewUploadService(
	storageClient *storage.Client,
	iamClient *credentials.IamCredentialsClient,
	bucket string,
	signerEmail string) *UploadService {
	return &UploadService{
		Storage:     storageClient,
		IAM:         iamClient,
		Bucket:      bucket,
		SignerEmail: signerEmail,
		now:         time.Now,
	}
}

// ObjectKey builds the bucket key for an upload: the server-side timestamp
// followed by the original filename, under the uploads/ prefix. The
// timestamp prefix keeps repeated uploads of the same file distinct.
func ObjectKey(t time.Time, filename string) string {
	return fmt.Sprintf("uploads/%s_%s", t.UTC().Format(objectKeyTimeFormat), path.Base(filename))
}

// Locator returns the gs:// form of an object reference. This is the form
// the analysis request hands to the model endpoint.
func Locator(bucket, key string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, key)
}

// PublicURL returns the direct-access HTTPS URL for a stored object.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}

// Upload streams the video into the bucket and marks the object
// publicly readable so the browser can play it back.
//
// Inputs:
//   - ctx: The request context; cancelling it aborts the write.
//   - filename: The original filename, used in the object key.
//   - contentType: The MIME type recorded on the object.
//   - body: The video bytes.
//
// Outputs:
//   - *model.UploadRecord: The record for the stored object.
//   - error: An *UploadError when the write or ACL update fails.
func (s *UploadService) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (*model.UploadRecord, error) {
	uploadedAt := s.now()
	key := ObjectKey(uploadedAt, filename)
	object := s.Storage.Bucket(s.Bucket).Object(key)

	writer := object.NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()
		return nil, classifyStorageError("write", err)
	}
	if err := writer.Close(); err != nil {
		return nil, classifyStorageError("write", err)
	}

	if err := object.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return nil, classifyStorageError("acl", err)
	}

	return &model.UploadRecord{
		PublicURL:  PublicURL(s.Bucket, key),
		Locator:    Locator(s.Bucket, key),
		Bucket:     s.Bucket,
		ObjectKey:  key,
		UploadedAt: uploadedAt,
	}, nil
}

// SignedPreviewURL returns a short-lived V4 signed URL for a stored video.
// Signing goes through the IAM credentials SignBlob API so no private key
// ships with the service.
func (s *UploadService) SignedPreviewURL(ctx context.Context, record *model.UploadRecord) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodGet,
		GoogleAccessID: s.SignerEmail,
		Expires:        s.now().Add(previewURLLifetime),
		SignBytes: func(b []byte) ([]byte, error) {
			resp, err := s.IAM.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", s.SignerEmail),
				Payload: b,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}

	url, err := s.Storage.Bucket(record.Bucket).SignedURL(record.ObjectKey, opts)
	if err != nil {
		return "", classifyStorageError("sign", err)
	}
	return url, nil
}
