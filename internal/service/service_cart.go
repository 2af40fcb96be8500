// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// MaxLineQuantity caps a single cart line. cart_lines_quantity_check
// enforces the same bound in the database.
const MaxLineQuantity = 999

type cartService struct {
	cartRepository    store.CartRepository
	productRepository store.ProductRepository

	logger *logger.Logger
}

// NewCartService constructs a CartService.
func NewCartService(cartRepository store.CartRepository, productRepository store.ProductRepository, logger *logger.Logger) CartService {
	return &cartService{
		cartRepository:    cartRepository,
		productRepository: productRepository,
		logger:            logger,
	}
}

func (c *cartService) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	cart, err := c.cartRepository.ListCart(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*cartService.GetCart").Str("user_id", userID).Msg("listing cart failed")
		return nil, fmt.Errorf("listing cart failed: %w", err)
	}

	return cart, nil
}

// AddToCart adds quantity units of productID. Adding a product already in
// the cart increments its line instead of creating a second one.
func (c *cartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (models.Cart, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*cartService.AddToCart").
		Str("user_id", userID).
		Str("product_id", productID).
		Logger()

	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	if !utils.IsUUID(productID) {
		return nil, store.ErrProductNotFound
	}

	product, err := c.productRepository.GetProduct(ctx, productID)
	if err != nil {
		log.Err(err).Msg("product lookup failed")
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	if !product.InStock {
		log.Info().Msg("add rejected, product out of stock")
		return nil, ErrProductUnavailable
	}

	if err = c.cartRepository.AddLine(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, store.ErrQuantityOutOfRange) {
			log.Info().Int("quantity", quantity).Msg("add rejected, line would pass the quantity cap")
			return nil, ErrQuantityTooLarge
		}
		log.Err(err).Msg("adding cart line failed")
		return nil, fmt.Errorf("adding cart line failed: %w", err)
	}

	return c.GetCart(ctx, userID)
}

// UpdateQuantity sets the line for productID to exactly quantity.
// A quantity outside [1, MaxLineQuantity] is rejected before any write.
func (c *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (models.Cart, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	if !utils.IsUUID(productID) {
		return nil, store.ErrCartLineNotFound
	}

	if err := c.cartRepository.SetLineQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, store.ErrQuantityOutOfRange) {
			return nil, ErrQuantityTooLarge
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "*cartService.UpdateQuantity").
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("updating cart line failed")
		return nil, fmt.Errorf("updating cart line failed: %w", err)
	}

	return c.GetCart(ctx, userID)
}

// RemoveFromCart deletes the line for productID. Removing a product that
// is not in the cart succeeds.
func (c *cartService) RemoveFromCart(ctx context.Context, userID, productID string) (models.Cart, error) {
	if utils.IsUUID(productID) {
		if err := c.cartRepository.RemoveLine(ctx, userID, productID); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "*cartService.RemoveFromCart").
				Str("user_id", userID).
				Str("product_id", productID).
				Msg("removing cart line failed")
			return nil, fmt.Errorf("removing cart line failed: %w", err)
		}
	}

	return c.GetCart(ctx, userID)
}

func checkQuantity(quantity int) error {
	switch {
	case quantity < 1:
		return ErrInvalidQuantity
	case quantity > MaxLineQuantity:
		return ErrQuantityTooLarge
	}
	return nil
}
