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

// The server command runs the brand media analyzer API: video uploads to
// Cloud Storage, Gemini brand-compatibility analysis, and the chart and
// report views over the result.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brandmatch/brand-media-analyzer/internal/api"
	"github.com/brandmatch/brand-media-analyzer/internal/telemetry"
)

const (
	serverAddr      = ":8080"
	shutdownTimeout = 5 * time.Second
)

func main() {
	// A local .env file is a developer convenience; in deployment the
	// environment comes from the platform.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	telemetry.SetupLogging()
	config := GetConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("failed to set up telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Warn("telemetry shutdown failed", slog.Any("error", err))
		}
	}()

	state, err := InitState(ctx, config)
	if err != nil {
		slog.Error("failed to initialize application state", slog.Any("error", err))
		os.Exit(1)
	}
	defer state.CloudClients.Close()

	router := gin.Default()
	router.Use(otelgin.Middleware(config.Application.Name))
	router.Use(cors.Default())

	handler := &api.Handler{
		Uploader:       state.UploadService,
		Analyzer:       state.AnalysisService,
		Sessions:       state.Sessions,
		MaxUploadBytes: config.Application.MaxUploadBytes,
	}
	handler.Register(router)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		slog.Info("server listening", slog.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
