// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/go-chi/chi/v5"
)

const productIDParam = "productId"

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.services.CartService.GetCart(r.Context(), identity.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCart(w, cart)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.AddToCartRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.services.CartService.AddToCart(r.Context(), identity.ID, req.ProductID, req.Units())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCart(w, cart)
}

func (h *Handler) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateQuantityRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	productID := chi.URLParam(r, productIDParam)
	cart, err := h.services.CartService.UpdateQuantity(r.Context(), identity.ID, productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCart(w, cart)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	productID := chi.URLParam(r, productIDParam)
	cart, err := h.services.CartService.RemoveFromCart(r.Context(), identity.ID, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCart(w, cart)
}

// writeCart always encodes an array, never null.
func writeCart(w http.ResponseWriter, cart models.Cart) {
	if cart == nil {
		cart = models.Cart{}
	}
	utils.WriteJSON(w, cart, http.StatusOK)
}
