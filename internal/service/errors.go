// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so the two cases cannot be told apart.
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotAdmin             = errors.New("access denied, not an admin")
	ErrRegistrationDisabled = errors.New("registration is not allowed")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrInvalidToken        = errors.New("token is expired or invalid")
	ErrUserNotFound        = errors.New("user from token was not found")
	ErrForbidden           = errors.New("forbidden")

	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrCodeDeliveryFailed   = errors.New("reset code could not be delivered")

	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrQuantityTooLarge   = fmt.Errorf("%w and at most %d", ErrInvalidQuantity, MaxLineQuantity)
	ErrInvalidProductData = errors.New("invalid product data")
	ErrProductUnavailable = errors.New("product is out of stock")

	ErrImageStoreDisabled = errors.New("image store is not configured")
)
