// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("a valid email is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrInvalidResetCode = errors.New("code must be exactly 5 digits")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrEmptyName        = errors.New("name is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptyImage       = errors.New("image is required")
	ErrEmptyImageKey    = errors.New("Image key is required")
	ErrEmptyCategory    = errors.New("category is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrEmptyContentType = errors.New("content type is required")
)
