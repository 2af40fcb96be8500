// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

//go:embed products.json
var defaultCatalog []byte

// ErrEmptyCatalog is returned for a catalog file with no products.
var ErrEmptyCatalog = errors.New("catalog file holds no products")

type seeder struct {
	products  store.ProductRepository
	validator validators.Validator
}

// readCatalog decodes a JSON array of products. IDs and timestamps in the
// file are ignored so storage assigns fresh ones.
func readCatalog(r io.Reader) ([]models.Product, error) {
	var products []models.Product
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	for i := range products {
		products[i] = models.Product{
			Name:        strings.TrimSpace(products[i].Name),
			Description: strings.TrimSpace(products[i].Description),
			PriceCents:  products[i].PriceCents,
			Img:         products[i].Img,
			ImgKey:      products[i].ImgKey,
			Category:    strings.TrimSpace(products[i].Category),
			InStock:     products[i].InStock,
		}
	}
	return products, nil
}

// importCatalog replaces the whole catalog with products. Every product is
// validated before anything is deleted, so a bad file leaves the catalog
// untouched.
func (s *seeder) importCatalog(ctx context.Context, products []models.Product) (int, error) {
	for i, p := range products {
		if err := s.validator.Validate(ctx, p); err != nil {
			return 0, fmt.Errorf("product %d (%q): %w", i, p.Name, err)
		}
	}

	if _, err := s.products.DeleteAllProducts(ctx); err != nil {
		return 0, fmt.Errorf("clearing catalog: %w", err)
	}

	for i, p := range products {
		if _, err := s.products.CreateProduct(ctx, p); err != nil {
			return i, fmt.Errorf("creating %q: %w", p.Name, err)
		}
	}
	return len(products), nil
}

// destroyCatalog deletes every product and returns how many were removed.
func (s *seeder) destroyCatalog(ctx context.Context) (int64, error) {
	deleted, err := s.products.DeleteAllProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing catalog: %w", err)
	}
	return deleted, nil
}
