// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/blob"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// maxPageSize caps a single product listing.
const maxPageSize = 100

type catalogService struct {
	productRepository store.ProductRepository
	images            blob.ImageStore
	validator         validators.Validator

	logger *logger.Logger
}

// NewCatalogService constructs a CatalogService. images is used to release
// the image of a deleted product.
func NewCatalogService(productRepository store.ProductRepository, images blob.ImageStore, validator validators.Validator, logger *logger.Logger) CatalogService {
	return &catalogService{
		productRepository: productRepository,
		images:            images,
		validator:         validator,
		logger:            logger,
	}
}

func (c *catalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if filter.Limit == 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	products, err := c.productRepository.ListProducts(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogService.ListProducts").Msg("listing products failed")
		return nil, fmt.Errorf("listing products failed: %w", err)
	}

	return products, nil
}

func (c *catalogService) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	if !utils.IsUUID(productID) {
		return models.Product{}, store.ErrProductNotFound
	}

	return c.productRepository.GetProduct(ctx, productID)
}

func (c *catalogService) GetProductByName(ctx context.Context, name string) (models.Product, error) {
	if name == "" {
		return models.Product{}, store.ErrProductNotFound
	}

	return c.productRepository.GetProductByName(ctx, name)
}

func (c *catalogService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx).With().Str("func", "*catalogService.CreateProduct").Logger()

	if err := c.validator.Validate(ctx, product); err != nil {
		log.Debug().Err(err).Msg("product rejected by validator")
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidProductData, err)
	}

	created, err := c.productRepository.CreateProduct(ctx, product)
	if err != nil {
		log.Err(err).Str("name", product.Name).Msg("product creation failed")
		return models.Product{}, fmt.Errorf("product creation failed: %w", err)
	}

	log.Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

// UpdateProduct replaces every writable field of the product. When the
// image key changes the previous object is released.
func (c *catalogService) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx).With().Str("func", "*catalogService.UpdateProduct").Str("product_id", product.ID).Logger()

	if !utils.IsUUID(product.ID) {
		return models.Product{}, store.ErrProductNotFound
	}
	if err := c.validator.Validate(ctx, product); err != nil {
		log.Debug().Err(err).Msg("product rejected by validator")
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidProductData, err)
	}

	previous, err := c.productRepository.GetProduct(ctx, product.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("product lookup failed: %w", err)
	}

	updated, err := c.productRepository.UpdateProduct(ctx, product)
	if err != nil {
		log.Err(err).Msg("product update failed")
		return models.Product{}, fmt.Errorf("product update failed: %w", err)
	}

	if previous.ImgKey != "" && previous.ImgKey != updated.ImgKey {
		c.releaseImage(ctx, previous.ImgKey)
	}

	return updated, nil
}

// DeleteProduct removes the product. Cart lines referencing it are removed
// by the database. Image removal is best effort.
func (c *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	if !utils.IsUUID(productID) {
		return store.ErrProductNotFound
	}

	deleted, err := c.productRepository.DeleteProduct(ctx, productID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogService.DeleteProduct").Str("product_id", productID).Msg("product deletion failed")
		return fmt.Errorf("product deletion failed: %w", err)
	}

	if deleted.ImgKey != "" {
		c.releaseImage(ctx, deleted.ImgKey)
	}

	return nil
}

func (c *catalogService) Stats(ctx context.Context) (models.CatalogStats, error) {
	stats, err := c.productRepository.CatalogStats(ctx)
	if err != nil {
		return models.CatalogStats{}, fmt.Errorf("catalog stats failed: %w", err)
	}

	return stats, nil
}

func (c *catalogService) releaseImage(ctx context.Context, key string) {
	log := logger.FromContext(ctx).With().Str("func", "*catalogService.releaseImage").Str("key", key).Logger()

	err := c.images.DeleteImage(ctx, key)
	switch {
	case err == nil:
		log.Info().Msg("product image deleted")
	case errors.Is(err, blob.ErrStoreDisabled), errors.Is(err, blob.ErrForeignKey):
		log.Debug().Err(err).Msg("product image not deleted")
	default:
		log.Warn().Err(err).Msg("product image deletion failed")
	}
}
