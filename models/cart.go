// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CartLine is one (product, quantity) pair stored in the "cart_lines" table.
// There is at most one line per (user, product); LineID preserves
// insertion order.
type CartLine struct {
	LineID    int64  `json:"-"`
	UserID    string `json:"-"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItem is a cart line joined with the current product record.
// Prices are always read live from the catalog, never snapshotted.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the caller's cart as returned by every cart operation.
type Cart []CartItem

// TotalQuantity sums quantities across all lines.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

// Subtotal sums price * quantity in minor units.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, item := range c {
		total += item.Product.PriceCents * int64(item.Quantity)
	}
	return total
}
