// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/handler/http"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
)

// Handlers groups the transport handlers exposed by the server.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the HTTP handler. limiter may be nil.
func NewHandlers(services *service.Services, limiter store.RateLimiter, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errEmptyHTTPAddress
	}

	return &Handlers{HTTP: http.NewHandler(services, limiter, cfg, logger)}, nil
}
