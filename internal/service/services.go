// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/blob"
	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/notify"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// Services aggregates every service used by the transport layer.
type Services struct {
	TokenService         TokenService
	AuthService          AuthService
	PasswordResetService PasswordResetService
	CartService          CartService
	CatalogService       CatalogService
	ImageService         ImageService
	AppInfoService       AppInfoService
}

// Dependencies are the collaborators NewServices does not build itself.
type Dependencies struct {
	Hasher    crypto.PasswordHasher
	Codes     crypto.CodeGenerator
	Notifier  notify.Notifier
	Images    blob.ImageStore
	BuildInfo models.AppBuildInfo
}

// NewServices wires all services over storages.
func NewServices(storages *store.Storages, deps Dependencies, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	loginRoles, err := models.ParseRoles(cfg.App.LoginRoles)
	if err != nil {
		return nil, fmt.Errorf("parsing login roles: %w", err)
	}
	resetRoles, err := models.ParseRoles(cfg.App.ResetRoles)
	if err != nil {
		return nil, fmt.Errorf("parsing reset roles: %w", err)
	}

	authValidator := validators.NewAuthValidator(cfg.App.PasswordMinLength)
	catalogValidator := validators.NewCatalogValidator()

	tokens := NewTokenService(cfg.App, logger)

	return &Services{
		TokenService: tokens,
		AuthService:  NewAuthService(storages.UserRepository, tokens, deps.Hasher, authValidator, loginRoles, logger),
		PasswordResetService: NewPasswordResetService(
			storages.UserRepository,
			deps.Codes,
			deps.Hasher,
			deps.Notifier,
			authValidator,
			PasswordResetConfig{
				CodeTTL:       cfg.App.ResetCodeTTL,
				NotifyTimeout: cfg.Notifier.Timeout,
				Roles:         resetRoles,
			},
			logger,
		),
		CartService:    NewCartService(storages.CartRepository, storages.ProductRepository, logger),
		CatalogService: NewCatalogService(storages.ProductRepository, deps.Images, catalogValidator, logger),
		ImageService:   NewImageService(deps.Images, catalogValidator, logger),
		AppInfoService: NewAppInfoService(deps.BuildInfo, logger),
	}, nil
}
