// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages groups every repository the services depend on.
type Storages struct {
	UserRepository    UserRepository
	CartRepository    CartRepository
	ProductRepository ProductRepository

	// RateLimiter is nil when no Redis address is configured.
	RateLimiter RateLimiter

	db    *DB
	redis *redis.Client
}

// NewStorages connects to PostgreSQL (applying migrations) and, when
// configured, to Redis.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	storages := NewStoragesFromDB(db, log)

	if cfg.Storage.Redis.Address == "" {
		log.Warn().Str("func", "NewStorages").Msg("redis address is empty, rate limiting disabled")
		return storages, nil
	}

	client := NewRedisClient(cfg.Storage.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	log.Info().Str("func", "NewStorages").Msg("connected to redis successfully")

	storages.redis = client
	storages.RateLimiter = NewRedisRateLimiter(client, cfg.RateLimit, log)

	return storages, nil
}

// NewStoragesFromDB builds the SQL repositories over an existing connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		CartRepository:    NewCartRepository(db, log),
		ProductRepository: NewProductRepository(db, log),
		db:                db,
	}
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
