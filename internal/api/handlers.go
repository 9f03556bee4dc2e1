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

// Package api defines the HTTP surface of the analyzer. Handlers validate
// the request, delegate to the upload and analysis services, and shape the
// session's analysis into the view each endpoint serves. The handlers
// depend on small service interfaces so tests can run against fakes
// without any cloud credentials.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
	"github.com/brandmatch/brand-media-analyzer/internal/core/render"
	"github.com/brandmatch/brand-media-analyzer/internal/core/schema"
	"github.com/brandmatch/brand-media-analyzer/internal/core/services"
	"github.com/brandmatch/brand-media-analyzer/internal/core/session"
)

// uploadFormField is the multipart field the video arrives under.
const uploadFormField = "video"

// sniffLen is how many leading bytes the type sniffer needs.
const sniffLen = 261

// Uploader stores videos and signs preview links. Implemented by
// services.UploadService.
type Uploader interface {
	Upload(ctx context.Context, filename string, contentType string, body io.Reader) (*model.UploadRecord, error)
	SignedPreviewURL(ctx context.Context, record *model.UploadRecord) (string, error)
}

// Analyzer produces a brand analysis for a stored video. Implemented by
// services.AnalysisService.
type Analyzer interface {
	Analyze(ctx context.Context, record *model.UploadRecord) (*model.BrandAnalysis, error)
}

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	Uploader       Uploader
	Analyzer       Analyzer
	Sessions       *session.Manager
	MaxUploadBytes int64
}

// Register attaches all routes to the gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.healthz)

	v1 := r.Group("/api/v1")
	v1.POST("/sessions", h.createSession)

	s := v1.Group("/sessions/:id")
	s.GET("", h.getSession)
	s.POST("/upload", h.upload)
	s.POST("/analyze", h.analyze)
	s.GET("/overview", h.overview)
	s.GET("/audience", h.audience)
	s.GET("/brands", h.brands)
	s.GET("/charts", h.chartPage)
	s.GET("/charts/data", h.chartData)
	s.GET("/report.pdf", h.report)
	s.GET("/preview", h.preview)
}

// healthz is the liveness check. It reports process health only and must
// stay dependency-free: a misconfigured service still answers here.
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) createSession(c *gin.Context) {
	s := h.Sessions.Create()
	c.JSON(http.StatusCreated, s.Snapshot())
}

// lookupSession resolves the :id path parameter, writing a 404 and
// returning nil when the session does not exist.
func (h *Handler) lookupSession(c *gin.Context) *session.Session {
	s, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil
	}
	return s
}

func (h *Handler) getSession(c *gin.Context) {
	s := h.lookupSession(c)
	if s == nil {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// upload receives a video and stores it through the upload service.
// Oversize and non-video payloads are rejected before any storage call.
func (h *Handler) upload(c *gin.Context) {
	s := h.lookupSession(c)
	if s == nil {
		return
	}

	fileHeader, err := c.FormFile(uploadFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("missing %q form file", uploadFormField)})
		return
	}

	if fileHeader.Size > h.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("video exceeds the %d byte upload limit", h.MaxUploadBytes),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer func() { _ = file.Close() }()

	// Sniff the real content type from the leading bytes; the multipart
	// header's type is client-controlled.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	head = head[:n]
	if !filetype.IsVideo(head) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "uploaded file is not a video"})
		return
	}

	if err := s.BeginUpload(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	kind, _ := filetype.Match(head)
	record, err := h.Uploader.Upload(
		c.Request.Context(),
		fileHeader.Filename,
		kind.MIME.Value,
		io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		s.FailUpload(err)
		slog.ErrorContext(c.Request.Context(), "video upload failed",
			slog.String("session", s.ID()), slog.Any("error", err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.CompleteUpload(record)
	slog.InfoContext(c.Request.Context(), "video uploaded",
		slog.String("session", s.ID()), slog.String("locator", record.Locator))
	c.JSON(http.StatusOK, s.Snapshot())
}

// analyze runs the analysis pipeline over the session's stored video.
func (h *Handler) analyze(c *gin.Context) {
	s := h.lookupSession(c)
	if s == nil {
		return
	}

	if err := s.BeginAnalysis(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.Analyzer.Analyze(c.Request.Context(), s.Upload())
	if err != nil {
		s.FailAnalysis(err)
		slog.ErrorContext(c.Request.Context(), "analysis failed",
			slog.String("session", s.ID()), slog.Any("error", err))

		var validationErr *schema.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          "analysis response did not conform to the expected schema",
				"missing_fields": validationErr.Missing,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.CompleteAnalysis(analysis)
	c.JSON(http.StatusOK, s.Snapshot())
}

// requireAnalysis returns the session's analysis, writing a 409 when the
// session has nothing to display.
func (h *Handler) requireAnalysis(c *gin.Context) *model.BrandAnalysis {
	s := h.lookupSession(c)
	if s == nil {
		return nil
	}
	analysis := s.Analysis()
	if analysis == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no analysis available for this session"})
		return nil
	}
	return analysis
}

func (h *Handler) overview(c *gin.Context) {
	a := h.requireAnalysis(c)
	if a == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"video_url":     a.VideoURL,
		"content_style": a.ContentStyle,
		"themes":        a.Themes,
		"values":        a.ValuesAndTone.Values,
		"tone":          a.ValuesAndTone.Tone,
		"engagement":    a.Engagement,
	})
}

func (h *Handler) audience(c *gin.Context) {
	a := h.requireAnalysis(c)
	if a == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"age_range": a.TargetAudience.AgeRange,
		"gender":    a.TargetAudience.Gender,
		"interests": a.TargetAudience.Interests,
		"location":  a.TargetAudience.Location,
		"platforms": a.PrimaryPlatforms,
	})
}

func (h *Handler) brands(c *gin.Context) {
	a := h.requireAnalysis(c)
	if a == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"market_niches":              render.SortedNiches(a),
		"brand_matches":              a.BrandMatches,
		"collaboration_types":        a.CollaborationTypes,
		"prior_collaborations":       a.PriorCollaborations,
		"brand_image_considerations": a.BrandImageConsiderations,
	})
}

func (h *Handler) chartPage(c *gin.Context) {
	a := h.requireAnalysis(c)
	if a == nil {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.RenderChartPage(c.Writer, a); err != nil {
		slog.ErrorContext(c.Request.Context(), "chart page render failed", slog.Any("error", err))
	}
}

func (h *Handler) chartData(c *gin.Context) {
	a := h.requireAnalysis(c)
	if a == nil {
		return
	}
	c.JSON(http.StatusOK, render.BuildChartData(a))
}

func (h *Handler) report(c *gin.Context) {
	a := h.requireAnalysis(c)
	if a == nil {
		return
	}
	doc, err := render.GenerateReport(a)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "report render failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", render.ReportFilename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// preview returns a short-lived signed URL for the session's stored video.
func (h *Handler) preview(c *gin.Context) {
	s := h.lookupSession(c)
	if s == nil {
		return
	}
	record := s.Upload()
	if record == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no video uploaded for this session"})
		return
	}

	url, err := h.Uploader.SignedPreviewURL(c.Request.Context(), record)
	if err != nil {
		var uploadErr *services.UploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": uploadErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
