// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/go-chi/chi/v5"
)

const (
	productIDPathParam   = "id"
	productNamePathParam = "name"

	msgProductDeleted = "Product deleted successfully"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.services.CatalogService.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.CatalogService.GetProduct(r.Context(), chi.URLParam(r, productIDPathParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) getProductByName(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, productNamePathParam))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidQuery, err))
		return
	}

	product, err := h.services.CatalogService.GetProductByName(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(w, r, &product); err != nil {
		writeError(w, r, err)
		return
	}
	product.ID = ""

	created, err := h.services.CatalogService.CreateProduct(r.Context(), product)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("product_id", created.ID).Msg("product created")
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(w, r, &product); err != nil {
		writeError(w, r, err)
		return
	}
	product.ID = chi.URLParam(r, productIDPathParam)

	updated, err := h.services.CatalogService.UpdateProduct(r.Context(), product)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, productIDPathParam)
	if err := h.services.CatalogService.DeleteProduct(r.Context(), productID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("product_id", productID).Msg("product deleted")
	utils.WriteJSON(w, models.MessageResponse{Message: msgProductDeleted}, http.StatusOK)
}

// parseProductFilter reads category, q, inStock, limit and offset.
func parseProductFilter(query url.Values) (models.ProductFilter, error) {
	filter := models.ProductFilter{
		Category: strings.TrimSpace(query.Get("category")),
		Query:    strings.TrimSpace(query.Get("q")),
	}

	if raw := query.Get("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ProductFilter{}, fmt.Errorf("%w: inStock: %w", ErrInvalidQuery, err)
		}
		filter.InStock = &inStock
	}

	var err error
	if filter.Limit, err = parseUintParam(query, "limit"); err != nil {
		return models.ProductFilter{}, err
	}
	if filter.Offset, err = parseUintParam(query, "offset"); err != nil {
		return models.ProductFilter{}, err
	}

	return filter, nil
}

func parseUintParam(query url.Values, name string) (uint64, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidQuery, name, err)
	}
	return n, nil
}
