// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
)

// Handler serves the storefront REST API.
type Handler struct {
	services *service.Services

	// limiter is nil when rate limiting is disabled.
	limiter     store.RateLimiter
	corsOrigins []string
	trustProxy  bool

	logger *logger.Logger
}

// NewHandler builds a Handler. A nil limiter disables rate limiting.
func NewHandler(services *service.Services, limiter store.RateLimiter, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		limiter:     limiter,
		corsOrigins: cfg.CORSOrigins,
		trustProxy:  cfg.TrustProxy,
		logger:      logger,
	}
}
