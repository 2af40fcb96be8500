// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

const (
	msgRegistrationDisabled = "Registration is not allowed."
	msgLoginSuccessful      = "Login successful"
	msgProfileFetched       = "Profile fetched successfully"
	msgResetCodeSent        = "If an account with that email exists, a reset code has been sent."
	msgCodeVerified         = "Code verified successfully."
	msgPasswordReset        = "Password reset successfully."
	msgResetCodeRejected    = "Invalid or expired code. Please try again."
)

// register always refuses. The body is never read.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	err := h.services.AuthService.Register(r.Context())
	if err != nil && !errors.Is(err, service.ErrRegistrationDisabled) {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Msg("registration attempt refused")
	utils.WriteJSON(w, models.MessageResponse{Message: msgRegistrationDisabled}, http.StatusForbidden)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	identity, token, err := h.services.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", identity.ID).Msg("user logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Message: msgLoginSuccessful,
		User:    identity,
		Token:   token.SignedString,
	}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ProfileResponse{Message: msgProfileFetched, User: identity}, http.StatusOK)
}

// forgotPassword answers with the same body whether or not the email
// belongs to an account.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.PasswordResetService.RequestCode(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgResetCodeSent}, http.StatusOK)
}

func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.PasswordResetService.VerifyCode(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgCodeVerified}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.services.PasswordResetService.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if errors.Is(err, service.ErrInvalidOrExpiredCode) {
		writeErrorMessage(w, r, err, http.StatusBadRequest, msgResetCodeRejected)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgPasswordReset}, http.StatusOK)
}
