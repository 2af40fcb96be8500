// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/treasured-fragrances/internal/blob"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

const msgInternalServerError = "Internal Server Error"

// errorMapping translates a sentinel into a status and the text clients see.
// An empty message exposes the sentinel's own text, capitalised.
type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is matched in order, so field-level validation errors are
// listed before the service errors that wrap them.
var errorMappings = []errorMapping{
	{target: validators.ErrInvalidEmail, status: http.StatusBadRequest},
	{target: validators.ErrEmptyPassword, status: http.StatusBadRequest},
	{target: validators.ErrPasswordTooShort, status: http.StatusBadRequest},
	{target: validators.ErrPasswordTooLong, status: http.StatusBadRequest},
	{target: validators.ErrInvalidProductID, status: http.StatusBadRequest},
	{target: validators.ErrEmptyName, status: http.StatusBadRequest},
	{target: validators.ErrEmptyDescription, status: http.StatusBadRequest},
	{target: validators.ErrEmptyImage, status: http.StatusBadRequest},
	{target: validators.ErrEmptyImageKey, status: http.StatusBadRequest},
	{target: validators.ErrEmptyCategory, status: http.StatusBadRequest},
	{target: validators.ErrNegativePrice, status: http.StatusBadRequest},
	{target: validators.ErrEmptyContentType, status: http.StatusBadRequest},
	{target: blob.ErrEmptyKey, status: http.StatusBadRequest, message: "Image key is required"},
	{target: blob.ErrUnsupportedContentType, status: http.StatusBadRequest},
	{target: blob.ErrForeignKey, status: http.StatusBadRequest},

	{target: ErrInvalidJSON, status: http.StatusBadRequest},
	{target: ErrInvalidQuery, status: http.StatusBadRequest},
	{target: ErrMissingIdentity, status: http.StatusUnauthorized, message: "Not authorized, user not found"},

	{target: service.ErrInvalidCredentials, status: http.StatusBadRequest, message: "Invalid credentials"},
	{target: service.ErrInvalidToken, status: http.StatusUnauthorized, message: "Not authorized, token failed"},
	{target: service.ErrUserNotFound, status: http.StatusUnauthorized, message: "Not authorized, user not found"},
	{target: service.ErrNotAdmin, status: http.StatusForbidden, message: "Access denied. Not an admin."},
	{target: service.ErrForbidden, status: http.StatusForbidden, message: "Forbidden"},
	{target: service.ErrRegistrationDisabled, status: http.StatusForbidden, message: "Registration is not allowed."},
	{target: service.ErrInvalidOrExpiredCode, status: http.StatusBadRequest, message: "Invalid or expired code."},
	{target: service.ErrCodeDeliveryFailed, status: http.StatusBadGateway, message: "Email could not be sent. Please try again."},
	{target: service.ErrQuantityTooLarge, status: http.StatusBadRequest, message: "Quantity cannot exceed 999."},
	{target: service.ErrInvalidQuantity, status: http.StatusBadRequest, message: "Quantity must be at least 1. Use the remove button to delete."},
	{target: service.ErrProductUnavailable, status: http.StatusConflict, message: "Product is out of stock"},
	{target: service.ErrImageStoreDisabled, status: http.StatusServiceUnavailable, message: "Image storage is not configured"},
	{target: service.ErrInvalidProductData, status: http.StatusBadRequest, message: "Invalid product data"},
	{target: service.ErrInvalidDataProvided, status: http.StatusBadRequest, message: "Invalid data provided"},

	{target: store.ErrProductNotFound, status: http.StatusNotFound, message: "Product not found"},
	{target: store.ErrCartLineNotFound, status: http.StatusNotFound, message: "Item not found in cart"},
	{target: store.ErrProductNameTaken, status: http.StatusConflict, message: "A product with this name already exists"},
	{target: store.ErrEmailAlreadyExists, status: http.StatusConflict, message: "An account with this email already exists"},
}

func lookupError(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

func statusFromError(err error) int {
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

func publicMessage(err error) string {
	m, ok := lookupError(err)
	if !ok {
		return msgInternalServerError
	}
	if m.message != "" {
		return m.message
	}
	return capitalize(m.target.Error())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// writeError logs err with its detail and answers with the mapped status and
// the public message only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	writeErrorMessage(w, r, err, status, publicMessage(err))
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", status).Msg(message)

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
