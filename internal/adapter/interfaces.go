// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a typed client for the storefront REST API.
//
// [NewHTTPStorefrontClient] speaks to a running server over HTTP. Non-2xx
// answers are mapped to the sentinel errors in errors.go so callers can use
// [errors.Is]; the server's {"error": "..."} text is kept in the message.
package adapter

import (
	"context"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// StorefrontClient is the client side of the storefront API.
type StorefrontClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Login authenticates and stores the returned token.
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Profile(ctx context.Context) (models.Identity, error)

	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) (string, error)

	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (models.Product, error)

	GetCart(ctx context.Context) (models.Cart, error)
	// AddToCart sends no quantity when quantity is nil.
	AddToCart(ctx context.Context, productID string, quantity *int) (models.Cart, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (models.Cart, error)
	RemoveFromCart(ctx context.Context, productID string) (models.Cart, error)

	Version(ctx context.Context) (models.AppBuildInfo, error)
}
