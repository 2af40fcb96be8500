// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/jackc/pgerrcode"
)

// ids issues primary keys for rows created without one.
var ids = utils.NewUUIDGenerator()

// orNewID returns id, or a fresh UUID when id is empty.
func orNewID(id string) string {
	if id == "" {
		return ids.Generate()
	}
	return id
}

// likeEscaper neutralises LIKE wildcards in user-supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type productRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProductRepository constructs a [ProductRepository].
func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Img, &p.ImgKey, &p.Category, &p.InStock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProduct inserts product with its caller-assigned ID.
func (r *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createProduct,
		orNewID(product.ID), product.Name, product.Description, product.PriceCents,
		product.Img, product.ImgKey, product.Category, product.InStock)

	created, err := scanProduct(row)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("error inserting product")
		return models.Product{}, mapProductWriteError(err)
	}

	return created, nil
}

// GetProduct returns the product with productID or [ErrProductNotFound].
func (r *productRepository) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	return r.getOne(ctx, "*productRepository.GetProduct", getProduct, productID)
}

// GetProductByName returns the product with the exact name or [ErrProductNotFound].
func (r *productRepository) GetProductByName(ctx context.Context, name string) (models.Product, error) {
	return r.getOne(ctx, "*productRepository.GetProductByName", getProductByName, name)
}

func (r *productRepository) getOne(ctx context.Context, op, query string, args ...any) (models.Product, error) {
	log := logger.FromContext(ctx)

	var product models.Product
	err := r.db.withRetry(ctx, op, func() error {
		var scanErr error
		product, scanErr = scanProduct(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, sql.ErrNoRows), postgresError(err) == pgerrcode.InvalidTextRepresentation:
		return models.Product{}, ErrProductNotFound
	default:
		log.Err(err).Str("func", op).Msg("error querying product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// ListProducts returns the products matching filter, newest first.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProductsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var products []models.Product
	err = r.db.withRetry(ctx, "*productRepository.ListProducts", func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		products = make([]models.Product, 0)
		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error listing products")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return products, nil
}

func buildListProductsQuery(filter models.ProductFilter) (string, []any, error) {
	builder := psql.Select(productColumns).
		From(models.Product{}.TableName()).
		OrderBy("created_at DESC", "id")

	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		builder = builder.Where(sq.ILike{"name": "%" + likeEscaper.Replace(q) + "%"})
	}
	if filter.InStock != nil {
		builder = builder.Where(sq.Eq{"in_stock": *filter.InStock})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	return builder.ToSql()
}

// UpdateProduct overwrites every mutable column of product.
func (r *productRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateProduct,
		product.ID, product.Name, product.Description, product.PriceCents,
		product.Img, product.ImgKey, product.Category, product.InStock)

	updated, err := scanProduct(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("error updating product")
		}
		return models.Product{}, mapProductWriteError(err)
	}

	return updated, nil
}

// DeleteProduct deletes the product; its cart lines go with it through the
// ON DELETE CASCADE foreign key.
func (r *productRepository) DeleteProduct(ctx context.Context, productID string) (models.Product, error) {
	log := logger.FromContext(ctx)

	deleted, err := scanProduct(r.db.QueryRowContext(ctx, deleteProduct, productID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*productRepository.DeleteProduct").Msg("error deleting product")
		}
		return models.Product{}, mapProductWriteError(err)
	}

	return deleted, nil
}

// DeleteAllProducts removes every product. Cart lines referencing them
// cascade.
func (r *productRepository) DeleteAllProducts(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, deleteAllProducts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*productRepository.DeleteAllProducts").Msg("error deleting products")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

// CatalogStats aggregates product counts per category.
func (r *productRepository) CatalogStats(ctx context.Context) (models.CatalogStats, error) {
	log := logger.FromContext(ctx)

	stats := models.CatalogStats{ByCategory: make(map[string]int)}
	err := r.db.withRetry(ctx, "*productRepository.CatalogStats", func() error {
		rows, err := r.db.QueryContext(ctx, catalogStats)
		if err != nil {
			return err
		}
		defer rows.Close()

		stats = models.CatalogStats{ByCategory: make(map[string]int)}
		for rows.Next() {
			var (
				category       string
				total, inStock int
			)
			if err = rows.Scan(&category, &total, &inStock); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			stats.ByCategory[category] = total
			stats.TotalProducts += total
			stats.InStockProducts += inStock
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CatalogStats").Msg("error aggregating catalog")
		return models.CatalogStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}

func mapProductWriteError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrProductNotFound
	case postgresError(err) == pgerrcode.InvalidTextRepresentation:
		return ErrProductNotFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return ErrProductNameTaken
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}
