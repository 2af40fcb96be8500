// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/treasured-fragrances/internal/blob"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/mock"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCatalogSvc(t *testing.T) (CatalogService, *mock.MockProductRepository, *mock.MockImageStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	products := mock.NewMockProductRepository(ctrl)
	images := mock.NewMockImageStore(ctrl)
	return NewCatalogService(products, images, validators.NewCatalogValidator(), logger.Nop()), products, images
}

func sampleProduct() models.Product {
	return models.Product{
		ID:          oudID,
		Name:        "Oud Royale",
		Description: "Smoky oud with damask rose",
		PriceCents:  12900,
		Img:         "https://cdn.example.com/products/2026/01/02/a.webp",
		ImgKey:      "products/2026/01/02/a.webp",
		Category:    "unisex",
		InStock:     true,
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	svc, products, _ := newTestCatalogSvc(t)

	in := sampleProduct()
	in.ID = ""
	out := sampleProduct()
	products.EXPECT().CreateProduct(gomock.Any(), in).Return(out, nil)

	got, err := svc.CreateProduct(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestCatalogService_CreateProduct_Invalid(t *testing.T) {
	svc, _, _ := newTestCatalogSvc(t)

	in := sampleProduct()
	in.PriceCents = -5

	_, err := svc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidProductData)
	assert.ErrorIs(t, err, validators.ErrNegativePrice)
}

func TestCatalogService_CreateProduct_DuplicateName(t *testing.T) {
	svc, products, _ := newTestCatalogSvc(t)

	products.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(models.Product{}, store.ErrProductNameTaken)

	_, err := svc.CreateProduct(context.Background(), sampleProduct())
	assert.ErrorIs(t, err, store.ErrProductNameTaken)
}

func TestCatalogService_ListProducts_CapsPageSize(t *testing.T) {
	svc, products, _ := newTestCatalogSvc(t)

	products.EXPECT().ListProducts(gomock.Any(), models.ProductFilter{Category: "men", Limit: maxPageSize}).Return(nil, nil)
	_, err := svc.ListProducts(context.Background(), models.ProductFilter{Category: "men", Limit: 10_000})
	require.NoError(t, err)

	products.EXPECT().ListProducts(gomock.Any(), models.ProductFilter{Limit: 5, Offset: 10}).Return(nil, nil)
	_, err = svc.ListProducts(context.Background(), models.ProductFilter{Limit: 5, Offset: 10})
	require.NoError(t, err)
}

func TestCatalogService_GetProduct_MalformedID(t *testing.T) {
	svc, _, _ := newTestCatalogSvc(t)

	_, err := svc.GetProduct(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	_, err = svc.GetProductByName(context.Background(), "")
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestCatalogService_UpdateProduct_ReleasesReplacedImage(t *testing.T) {
	svc, products, images := newTestCatalogSvc(t)

	previous := sampleProduct()
	updated := sampleProduct()
	updated.ImgKey = "products/2026/02/03/b.webp"
	updated.Img = "https://cdn.example.com/products/2026/02/03/b.webp"

	gomock.InOrder(
		products.EXPECT().GetProduct(gomock.Any(), oudID).Return(previous, nil),
		products.EXPECT().UpdateProduct(gomock.Any(), updated).Return(updated, nil),
		images.EXPECT().DeleteImage(gomock.Any(), previous.ImgKey).Return(nil),
	)

	got, err := svc.UpdateProduct(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, updated.ImgKey, got.ImgKey)
}

func TestCatalogService_UpdateProduct_SameImageKept(t *testing.T) {
	svc, products, _ := newTestCatalogSvc(t)

	p := sampleProduct()
	products.EXPECT().GetProduct(gomock.Any(), oudID).Return(p, nil)
	products.EXPECT().UpdateProduct(gomock.Any(), p).Return(p, nil)

	_, err := svc.UpdateProduct(context.Background(), p)
	require.NoError(t, err)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	svc, products, _ := newTestCatalogSvc(t)

	products.EXPECT().GetProduct(gomock.Any(), oudID).Return(models.Product{}, store.ErrProductNotFound)

	_, err := svc.UpdateProduct(context.Background(), sampleProduct())
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Run("image released", func(t *testing.T) {
		svc, products, images := newTestCatalogSvc(t)
		p := sampleProduct()
		products.EXPECT().DeleteProduct(gomock.Any(), oudID).Return(p, nil)
		images.EXPECT().DeleteImage(gomock.Any(), p.ImgKey).Return(nil)

		require.NoError(t, svc.DeleteProduct(context.Background(), oudID))
	})

	t.Run("image failure does not fail deletion", func(t *testing.T) {
		svc, products, images := newTestCatalogSvc(t)
		p := sampleProduct()
		products.EXPECT().DeleteProduct(gomock.Any(), oudID).Return(p, nil)
		images.EXPECT().DeleteImage(gomock.Any(), p.ImgKey).Return(errors.New("s3: 503"))

		require.NoError(t, svc.DeleteProduct(context.Background(), oudID))
	})

	t.Run("store disabled", func(t *testing.T) {
		svc, products, images := newTestCatalogSvc(t)
		p := sampleProduct()
		products.EXPECT().DeleteProduct(gomock.Any(), oudID).Return(p, nil)
		images.EXPECT().DeleteImage(gomock.Any(), p.ImgKey).Return(blob.ErrStoreDisabled)

		require.NoError(t, svc.DeleteProduct(context.Background(), oudID))
	})

	t.Run("missing product", func(t *testing.T) {
		svc, products, _ := newTestCatalogSvc(t)
		products.EXPECT().DeleteProduct(gomock.Any(), oudID).Return(models.Product{}, store.ErrProductNotFound)

		assert.ErrorIs(t, svc.DeleteProduct(context.Background(), oudID), store.ErrProductNotFound)
	})
}

func TestCatalogService_Stats(t *testing.T) {
	svc, products, _ := newTestCatalogSvc(t)

	want := models.CatalogStats{TotalProducts: 3, InStockProducts: 2, ByCategory: map[string]int{"men": 1, "women": 2}}
	products.EXPECT().CatalogStats(gomock.Any()).Return(want, nil)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
