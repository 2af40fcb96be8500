// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)

	// Verify never touches storage. Every failure is reported as
	// ErrInvalidToken.
	Verify(ctx context.Context, raw string) (models.Token, error)
}

// AuthService covers credential checks, login and the identity lookup
// performed by the authorization middleware.
type AuthService interface {
	// Register always fails with ErrRegistrationDisabled. Accounts are
	// created out of band.
	Register(ctx context.Context) error

	VerifyCredentials(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.Identity, models.Token, error)

	// Authenticate verifies a raw bearer token and loads the identity it
	// names.
	Authenticate(ctx context.Context, rawToken string) (models.Identity, error)
	Profile(ctx context.Context, userID string) (models.Identity, error)
}

// PasswordResetService drives the forgot / verify / reset code flow.
type PasswordResetService interface {
	// RequestCode returns nil when no eligible account exists.
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// CartService mutates the cart of the identity passed in. Every method
// returns the cart as it is after the operation.
type CartService interface {
	GetCart(ctx context.Context, userID string) (models.Cart, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) (models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (models.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (models.Cart, error)
}

// CatalogService manages products.
type CatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (models.Product, error)
	GetProductByName(ctx context.Context, name string) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	Stats(ctx context.Context) (models.CatalogStats, error)
}

// ImageService hands out direct upload targets for product images and
// removes them.
type ImageService interface {
	PresignUpload(ctx context.Context, contentType string) (models.PresignedUpload, error)
	DeleteImage(ctx context.Context, key string) error
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppBuildInfo(ctx context.Context) models.AppBuildInfo
}
