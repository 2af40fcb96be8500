// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/jackc/pgerrcode"
)

var productRowColumns = []string{"id", "name", "description", "price_cents", "img", "img_key", "category", "in_stock", "created_at", "updated_at"}

func newTestProductRepo(t *testing.T) (*productRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	wrapped, mock, db := newTestDB(t)
	return &productRepository{db: wrapped, logger: logger.Nop()}, mock, func() { _ = db.Close() }
}

func productRow(id, name string, inStock bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productRowColumns).
		AddRow(id, name, "desc", int64(9900), "https://img", "products/k", "unisex", inStock, now, now)
}

// uuidArg matches any canonical UUID argument.
type uuidArg struct{}

func (uuidArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && utils.IsUUID(s)
}

func TestCreateProduct_AssignsIDWhenEmpty(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("INSERT INTO products").
		WithArgs(uuidArg{}, "Oud", "desc", int64(9900), "https://img", "products/k", "unisex", true).
		WillReturnRows(productRow("0190f5a2-1111-7000-8000-00000000000a", "Oud", true))

	_, err := repo.CreateProduct(context.Background(), models.Product{
		Name: "Oud", Description: "desc", PriceCents: 9900, Img: "https://img", ImgKey: "products/k", Category: "unisex", InStock: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateProduct_Success(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	p := models.Product{ID: "p-1", Name: "Oud", Description: "desc", PriceCents: 9900, Img: "https://img", ImgKey: "products/k", Category: "unisex", InStock: true}
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Description, p.PriceCents, p.Img, p.ImgKey, p.Category, p.InStock).
		WillReturnRows(productRow("p-1", "Oud", true))

	created, err := repo.CreateProduct(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "p-1" || created.CreatedAt.IsZero() {
		t.Errorf("unexpected product: %+v", created)
	}
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("INSERT INTO products").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateProduct(context.Background(), models.Product{ID: "p-1", Name: "Oud"})
	if !errors.Is(err, ErrProductNameTaken) {
		t.Fatalf("expected ErrProductNameTaken, got %v", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("FROM products").
		WithArgs("p-404").
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := repo.GetProduct(context.Background(), "p-404")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGetProduct_MalformedID(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("FROM products").
		WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))

	_, err := repo.GetProduct(context.Background(), "garbage")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGetProductByName_Success(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("WHERE name = \\$1").
		WithArgs("Oud").
		WillReturnRows(productRow("p-1", "Oud", true))

	p, err := repo.GetProductByName(context.Background(), "Oud")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Oud" {
		t.Errorf("expected Oud, got %s", p.Name)
	}
}

func TestBuildListProductsQuery(t *testing.T) {
	inStock := true
	tests := []struct {
		name      string
		filter    models.ProductFilter
		wantParts []string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    models.ProductFilter{},
			wantParts: []string{"SELECT id, name", "FROM products", "ORDER BY created_at DESC, id"},
			wantArgs:  nil,
		},
		{
			name:      "category and stock",
			filter:    models.ProductFilter{Category: "women", InStock: &inStock},
			wantParts: []string{"WHERE category = $1 AND in_stock = $2"},
			wantArgs:  []any{"women", true},
		},
		{
			name:      "search escapes wildcards",
			filter:    models.ProductFilter{Query: " 100%_oud "},
			wantParts: []string{"name ILIKE $1"},
			wantArgs:  []any{`%100\%\_oud%`},
		},
		{
			name:      "paging",
			filter:    models.ProductFilter{Limit: 20, Offset: 40},
			wantParts: []string{"LIMIT 20", "OFFSET 40"},
			wantArgs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListProductsQuery(tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(query, part) {
					t.Errorf("expected %q in %q", part, query)
				}
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected args %v, got %v", tt.wantArgs, args)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d: expected %v, got %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}

func TestListProducts_Success(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	now := time.Now()
	rows := sqlmock.NewRows(productRowColumns).
		AddRow("p-1", "Oud", "d", int64(1), "i", "k", "unisex", true, now, now).
		AddRow("p-2", "Rose", "d", int64(2), "i", "k", "women", true, now, now)

	mock.ExpectQuery("SELECT .* FROM products WHERE category = \\$1").
		WithArgs("women").
		WillReturnRows(rows)

	products, err := repo.ListProducts(context.Background(), models.ProductFilter{Category: "women"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("UPDATE products").
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := repo.UpdateProduct(context.Background(), models.Product{ID: "p-404"})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteProduct_ReturnsDeletedRow(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectQuery("DELETE FROM products").
		WithArgs("p-1").
		WillReturnRows(productRow("p-1", "Oud", true))

	deleted, err := repo.DeleteProduct(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.ImgKey != "products/k" {
		t.Errorf("expected image key to be returned, got %q", deleted.ImgKey)
	}
}

func TestDeleteAllProducts(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM products;").
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := repo.DeleteAllProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 12 {
		t.Errorf("expected 12 deleted rows, got %d", deleted)
	}
}

func TestDeleteAllProducts_ExecError(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM products;").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DeleteAllProducts(context.Background())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestCatalogStats(t *testing.T) {
	repo, mock, done := newTestProductRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"category", "count", "count"}).
		AddRow("men", 3, 2).
		AddRow("women", 5, 5)
	mock.ExpectQuery("GROUP BY category").
		WillReturnRows(rows)

	stats, err := repo.CatalogStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalProducts != 8 || stats.InStockProducts != 7 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.ByCategory["men"] != 3 || stats.ByCategory["women"] != 5 {
		t.Errorf("unexpected per-category counts: %+v", stats.ByCategory)
	}
}
