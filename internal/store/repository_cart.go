// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/jackc/pgerrcode"
)

// cartRepository is the PostgreSQL-backed implementation of [CartRepository].
// The (user_id, product_id) primary key guarantees at most one line per
// product in a cart.
type cartRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCartRepository constructs a [CartRepository].
func NewCartRepository(db *DB, logger *logger.Logger) CartRepository {
	logger.Debug().Msg("creating cart repository")
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

// ListCart returns the user's cart joined with current product rows.
func (r *cartRepository) ListCart(ctx context.Context, userID string) (models.Cart, error) {
	log := logger.FromContext(ctx)

	var cart models.Cart
	err := r.db.withRetry(ctx, "*cartRepository.ListCart", func() error {
		rows, err := r.db.QueryContext(ctx, listCart, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		cart = make(models.Cart, 0)
		for rows.Next() {
			var item models.CartItem
			p := &item.Product
			if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Img, &p.ImgKey, &p.Category, &p.InStock, &p.CreatedAt, &p.UpdatedAt, &item.Quantity); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			cart = append(cart, item)
		}

		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*cartRepository.ListCart").Msg("error listing cart")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return cart, nil
}

// AddLine inserts a new line or increments the existing one in a single
// statement.
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrProductNotFound].
//   - check_violation (23514) or numeric_value_out_of_range (22003), raised
//     when the summed quantity passes the cap → [ErrQuantityOutOfRange].
func (r *cartRepository) AddLine(ctx context.Context, userID, productID string, quantity int) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, addCartLine, userID, productID, quantity); err != nil {
		log.Err(err).Str("func", "*cartRepository.AddLine").Msg("error upserting cart line")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return ErrProductNotFound
		case pgerrcode.CheckViolation, pgerrcode.NumericValueOutOfRange:
			return ErrQuantityOutOfRange
		default:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// SetLineQuantity sets an absolute quantity on an existing line.
func (r *cartRepository) SetLineQuantity(ctx context.Context, userID, productID string, quantity int) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setCartLineQuantity, userID, productID, quantity)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.InvalidTextRepresentation:
			return ErrCartLineNotFound
		case pgerrcode.CheckViolation, pgerrcode.NumericValueOutOfRange:
			return ErrQuantityOutOfRange
		}
		log.Err(err).Str("func", "*cartRepository.SetLineQuantity").Msg("error updating cart line")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}

	return nil
}

// RemoveLine deletes the line for productID, if any.
func (r *cartRepository) RemoveLine(ctx context.Context, userID, productID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, removeCartLine, userID, productID); err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return nil
		}
		log.Err(err).Str("func", "*cartRepository.RemoveLine").Msg("error deleting cart line")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
