// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// UserRepository persists identities and their reset-code state.
//
// Email arguments are matched case-insensitively. Every write to the reset
// pair sets or clears both columns together.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByEmailAndRoles(ctx context.Context, email string, roles []models.Role) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// SetResetCode overwrites any previous code for userID.
	SetResetCode(ctx context.Context, userID, code string, expiresAt time.Time) error
	ClearResetCode(ctx context.Context, userID string) error

	// MatchResetCode returns the user holding code with an expiry after now,
	// or ErrResetCodeMismatch.
	MatchResetCode(ctx context.Context, email, code string, now time.Time) (models.User, error)

	// ConsumeResetCode replaces the password hash and clears the reset pair in
	// one statement guarded by the same predicate as MatchResetCode.
	ConsumeResetCode(ctx context.Context, email, code string, now time.Time, passwordHash string) (models.User, error)

	// ClearExpiredResetCodes clears every reset pair that expired at or before
	// now and returns the number of users touched.
	ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error)
}

// CartRepository persists cart lines keyed by (user, product).
type CartRepository interface {
	// ListCart returns the user's lines joined with live product data in
	// insertion order.
	ListCart(ctx context.Context, userID string) (models.Cart, error)

	// AddLine inserts a line or atomically increments an existing one.
	AddLine(ctx context.Context, userID, productID string, quantity int) error

	// SetLineQuantity overwrites the quantity of an existing line.
	SetLineQuantity(ctx context.Context, userID, productID string, quantity int) error

	// RemoveLine deletes the line if present. Removing a missing line is not
	// an error.
	RemoveLine(ctx context.Context, userID, productID string) error
}

// ProductRepository persists the catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProduct(ctx context.Context, productID string) (models.Product, error)
	GetProductByName(ctx context.Context, name string) (models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)

	// DeleteProduct removes the product and returns the deleted row so the
	// caller can release its image.
	DeleteProduct(ctx context.Context, productID string) (models.Product, error)
	// DeleteAllProducts empties the catalog and reports how many rows went.
	DeleteAllProducts(ctx context.Context) (int64, error)
	CatalogStats(ctx context.Context) (models.CatalogStats, error)
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitDecision, error)
}

// RateLimitDecision is the outcome of a single RateLimiter.Allow call.
type RateLimitDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}
