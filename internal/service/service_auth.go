// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	userRepository store.UserRepository
	tokens         TokenService
	hasher         crypto.PasswordHasher
	validator      validators.Validator

	// loginRoles are the roles allowed to obtain a session token.
	loginRoles []models.Role

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. loginRoles must already be
// parsed; an empty list locks everyone out.
func NewAuthService(
	userRepository store.UserRepository,
	tokens TokenService,
	hasher crypto.PasswordHasher,
	validator validators.Validator,
	loginRoles []models.Role,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		hasher:         hasher,
		validator:      validator,
		loginRoles:     loginRoles,
		logger:         logger,
	}
}

func (a *authService) Register(ctx context.Context) error {
	logger.FromContext(ctx).Info().Str("func", "*authService.Register").Msg("self-registration attempt rejected")
	return ErrRegistrationDisabled
}

// VerifyCredentials looks the account up by email and compares password
// against its stored hash.
//
// An unknown email and a wrong password both return ErrInvalidCredentials.
// When the email is unknown a dummy comparison is still run so that
// response time does not depend on whether the account exists.
func (a *authService) VerifyCredentials(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.VerifyCredentials").Logger()

	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.CompareDummy(password)
		log.Info().Msg("login attempt for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	match, err := a.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("stored password hash could not be compared")
		return models.User{}, fmt.Errorf("error comparing password hash: %w", err)
	}
	if !match {
		log.Info().Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Login verifies credentials, checks the account holds a login role and
// issues a token.
func (a *authService) Login(ctx context.Context, email, password string) (models.Identity, models.Token, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.Login").Logger()

	req := models.LoginRequest{Email: email, Password: password}
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("login request rejected by validator")
		return models.Identity{}, models.Token{}, ErrInvalidCredentials
	}

	user, err := a.VerifyCredentials(ctx, email, password)
	if err != nil {
		return models.Identity{}, models.Token{}, err
	}

	identity := user.Summary()
	if !identity.HasRole(a.loginRoles...) {
		log.Warn().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("login denied for role")
		return models.Identity{}, models.Token{}, ErrNotAdmin
	}

	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("creation of token failed")
		return models.Identity{}, models.Token{}, err
	}

	log.Info().Str("user_id", user.ID).Msg("user logged in")
	return identity, token, nil
}

// Authenticate backs the authorization middleware. The role is taken from
// storage rather than the token so that a role change is effective
// immediately.
func (a *authService) Authenticate(ctx context.Context, rawToken string) (models.Identity, error) {
	token, err := a.tokens.Verify(ctx, rawToken)
	if err != nil {
		return models.Identity{}, err
	}

	return a.Profile(ctx, token.UserID)
}

func (a *authService) Profile(ctx context.Context, userID string) (models.Identity, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		logger.FromContext(ctx).Info().Str("func", "*authService.Profile").Str("user_id", userID).Msg("user from token no longer exists")
		return models.Identity{}, ErrUserNotFound
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user.Summary(), nil
}
