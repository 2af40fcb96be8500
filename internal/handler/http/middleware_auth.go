// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

const (
	msgNoToken      = "Not authorized, no token"
	msgTokenFailed  = "Not authorized, token failed"
	msgUserNotFound = "Not authorized, user not found"
	msgNotAdmin     = "Access denied. Not an admin."
	msgForbidden    = "Forbidden"
)

// auth is the bearer token gate.
//
// It extracts the token from the "Authorization: Bearer <token>" header,
// verifies it and reloads the identity it names. On success the identity
// summary (without the password hash) is attached to the request context
// with [utils.WithIdentity]. Every failure answers 401; the detailed
// reason is only logged.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeErrorMessage(w, r, ErrEmptyAuthorizationHeader, http.StatusUnauthorized, msgNoToken)
			return
		}

		rawToken, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeErrorMessage(w, r, err, http.StatusUnauthorized, msgTokenFailed)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, rawToken)
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeErrorMessage(w, r, err, http.StatusUnauthorized, msgUserNotFound)
			return
		case errors.Is(err, service.ErrInvalidToken):
			writeErrorMessage(w, r, err, http.StatusUnauthorized, msgTokenFailed)
			return
		case err != nil:
			writeError(w, r, err)
			return
		}

		log := logger.FromContext(ctx).With().Str("user_id", identity.ID).Logger()
		ctx = log.WithContext(utils.WithIdentity(ctx, identity))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole admits only identities holding one of roles. It must run
// after auth.
func (h *Handler) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	message := msgForbidden
	if len(roles) == 1 && roles[0] == models.RoleAdmin {
		message = msgNotAdmin
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromRequest(r)
			if err != nil {
				writeError(w, r, err)
				return
			}

			if !identity.HasRole(roles...) {
				writeErrorMessage(w, r, service.ErrForbidden, http.StatusForbidden, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
