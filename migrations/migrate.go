// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the storefront schema (users, products and
// cart lines) and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

// ErrNilDB is returned by Migrate when no connection is given.
var ErrNilDB = errors.New("migrations: db is nil")

// Migrate applies every pending migration to db and returns the versions
// that were applied by this call. An up-to-date schema yields no versions.
func Migrate(ctx context.Context, db *sql.DB) ([]int64, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, schema)
	if err != nil {
		return nil, fmt.Errorf("migrations: building provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: applying schema: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
