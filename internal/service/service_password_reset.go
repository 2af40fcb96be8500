// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/notify"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// PasswordResetConfig holds the policy knobs of the reset flow.
type PasswordResetConfig struct {
	// CodeTTL is how long an issued code stays valid.
	CodeTTL time.Duration

	// NotifyTimeout bounds a single delivery attempt.
	NotifyTimeout time.Duration

	// Roles are the roles allowed to run the flow.
	Roles []models.Role
}

// passwordResetService moves an account between three states:
// no active code, code issued, and back to no active code once the code
// is consumed, expires, or fails to be delivered.
type passwordResetService struct {
	userRepository store.UserRepository
	codes          crypto.CodeGenerator
	hasher         crypto.PasswordHasher
	notifier       notify.Notifier
	validator      validators.Validator

	cfg PasswordResetConfig
	now func() time.Time

	logger *logger.Logger
}

// NewPasswordResetService constructs a PasswordResetService using the wall
// clock.
func NewPasswordResetService(
	userRepository store.UserRepository,
	codes crypto.CodeGenerator,
	hasher crypto.PasswordHasher,
	notifier notify.Notifier,
	validator validators.Validator,
	cfg PasswordResetConfig,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepository: userRepository,
		codes:          codes,
		hasher:         hasher,
		notifier:       notifier,
		validator:      validator,
		cfg:            cfg,
		now:            time.Now,
		logger:         logger,
	}
}

// RequestCode issues a fresh code for an eligible account and emails it.
//
// A missing or ineligible account is not an error. If delivery fails the
// code is cleared again and ErrCodeDeliveryFailed is returned.
func (s *passwordResetService) RequestCode(ctx context.Context, email string) error {
	log := logger.FromContext(ctx).With().Str("func", "*passwordResetService.RequestCode").Logger()

	if err := s.validator.Validate(ctx, models.ForgotPasswordRequest{Email: email}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindUserByEmailAndRoles(ctx, models.NormalizeEmail(email), s.cfg.Roles)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Msg("reset requested for unknown or ineligible email")
		return nil
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	code, err := s.codes.Generate()
	if err != nil {
		log.Err(err).Msg("reset code generation failed")
		return fmt.Errorf("reset code generation failed: %w", err)
	}

	now := s.now()
	if err = s.userRepository.SetResetCode(ctx, user.ID, code, now.Add(s.cfg.CodeTTL)); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("saving reset code failed")
		return fmt.Errorf("saving reset code failed: %w", err)
	}

	if err = s.deliver(ctx, user, code, now); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("reset code delivery failed, clearing code")
		s.rollback(ctx, user.ID)
		return fmt.Errorf("%w: %w", ErrCodeDeliveryFailed, err)
	}

	log.Info().Str("user_id", user.ID).Msg("reset code issued")
	return nil
}

func (s *passwordResetService) deliver(ctx context.Context, user models.User, code string, now time.Time) error {
	msg, err := notify.NewResetCodeMessage(user.Email, user.Name, code, s.cfg.CodeTTL, now)
	if err != nil {
		return err
	}

	deliverCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	return s.notifier.Deliver(deliverCtx, msg)
}

// rollback clears the reset pair even if the caller has gone away.
func (s *passwordResetService) rollback(ctx context.Context, userID string) {
	clearCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.userRepository.ClearResetCode(clearCtx, userID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*passwordResetService.rollback").
			Str("user_id", userID).
			Msg("clearing undelivered reset code failed")
	}
}

// VerifyCode reports whether code is the live code of email. It never
// changes state.
func (s *passwordResetService) VerifyCode(ctx context.Context, email, code string) error {
	if err := s.validator.Validate(ctx, models.VerifyCodeRequest{Email: email, Code: code}); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*passwordResetService.VerifyCode").Msg("malformed verify request")
		return ErrInvalidOrExpiredCode
	}

	_, err := s.userRepository.MatchResetCode(ctx, models.NormalizeEmail(email), code, s.now())
	if errors.Is(err, store.ErrResetCodeMismatch) {
		return ErrInvalidOrExpiredCode
	}
	if err != nil {
		return fmt.Errorf("reset code lookup failed: %w", err)
	}

	return nil
}

// ResetPassword replaces the password of the account holding a live code
// and clears the code in the same statement, so a code is usable once.
func (s *passwordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	log := logger.FromContext(ctx).With().Str("func", "*passwordResetService.ResetPassword").Logger()

	err := s.validator.Validate(ctx, models.VerifyCodeRequest{Email: email, Code: code})
	if err != nil {
		log.Debug().Err(err).Msg("malformed reset request")
		return ErrInvalidOrExpiredCode
	}

	req := models.ResetPasswordRequest{Email: email, Code: code, NewPassword: newPassword}
	if err = s.validator.Validate(ctx, req, validators.FieldNewPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Msg("hashing new password failed")
		return fmt.Errorf("hashing new password failed: %w", err)
	}

	user, err := s.userRepository.ConsumeResetCode(ctx, models.NormalizeEmail(email), code, s.now(), hash)
	if errors.Is(err, store.ErrResetCodeMismatch) {
		log.Info().Msg("reset attempted with invalid or expired code")
		return ErrInvalidOrExpiredCode
	}
	if err != nil {
		log.Err(err).Msg("consuming reset code failed")
		return fmt.Errorf("consuming reset code failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}
