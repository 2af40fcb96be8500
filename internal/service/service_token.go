// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// tokenService signs HS256 session tokens with a shared secret.
// It holds no mutable state.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim embedded in every token and required on
	// verification.
	issuer string

	// duration controls how long a newly issued token remains valid.
	duration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the App configuration.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		logger:   logger,
	}
}

// Issue signs a token whose subject is user.ID and whose role claim is
// user.Role.
func (s *tokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.issuer, user.ID, user.Role, s.duration, s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks signature, issuer, expiry and role claim of raw. The
// underlying reason is logged at debug level and never returned.
func (s *tokenService) Verify(ctx context.Context, raw string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(raw, s.signKey, s.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token rejected")
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}
