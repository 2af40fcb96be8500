// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("Invalid JSON was passed")

	// ErrInvalidQuery is returned for malformed catalog query parameters.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrEmptyAuthorizationHeader is reported by the auth gate when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrMissingIdentity is returned when a handler behind the auth gate
	// finds no identity in the request context.
	ErrMissingIdentity = errors.New("no identity in request context")
)
