// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Product is a catalog entry. Price is kept in minor currency units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Img         string    `json:"img"`
	ImgKey      string    `json:"imgKey"`
	Category    string    `json:"category"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Query    string
	InStock  *bool
	Limit    uint64
	Offset   uint64
}

// CatalogStats is the summary shown on the admin dashboard.
type CatalogStats struct {
	TotalProducts   int            `json:"totalProducts"`
	InStockProducts int            `json:"inStockProducts"`
	ByCategory      map[string]int `json:"byCategory"`
}
