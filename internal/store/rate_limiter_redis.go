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
	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// fixedWindowScript increments the counter and starts the window on the
// first hit. It returns the new count and the remaining window in ms.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// redisRateLimiter is a fixed-window counter shared by every server
// instance pointing at the same Redis.
type redisRateLimiter struct {
	client  redis.UniversalClient
	limit   int
	window  time.Duration
	hashKey string
	logger  *logger.Logger
}

// NewRedisRateLimiter constructs a [RateLimiter]. Keys are HMAC-hashed with
// cfg.HashKey before they reach Redis.
func NewRedisRateLimiter(client redis.UniversalClient, cfg config.RateLimit, log *logger.Logger) RateLimiter {
	log.Debug().Int("requests", cfg.Requests).Dur("window", cfg.Window).Msg("creating redis rate limiter")
	return &redisRateLimiter{
		client:  client,
		limit:   cfg.Requests,
		window:  cfg.Window,
		hashKey: cfg.HashKey,
		logger:  log,
	}
}

// Allow counts one hit for key. On error the decision is zero-valued and
// the caller chooses whether to fail open.
func (l *redisRateLimiter) Allow(ctx context.Context, key string) (RateLimitDecision, error) {
	if key == "" {
		return RateLimitDecision{}, errors.New("rate limit key cannot be empty")
	}

	redisKey := rateLimitKeyPrefix + utils.HashString(key, l.hashKey)
	values, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return RateLimitDecision{}, fmt.Errorf("redis rate limit: %w", err)
	}
	if len(values) != 2 {
		return RateLimitDecision{}, fmt.Errorf("redis rate limit: unexpected reply %v", values)
	}

	count, ttl := int(values[0]), time.Duration(values[1])*time.Millisecond

	decision := RateLimitDecision{
		Allowed:    count <= l.limit,
		Limit:      l.limit,
		Remaining:  max(l.limit-count, 0),
		RetryAfter: ttl,
	}

	return decision, nil
}

// NewRedisClient builds a client from cfg. It does not dial until first use.
func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
