// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
)

const defaultReapInterval = time.Minute

// ResetCodeReaper clears reset codes whose expiry has passed. Expired
// codes are already rejected by every lookup; this only keeps the table
// tidy.
type ResetCodeReaper struct {
	users    store.UserRepository
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewResetCodeReaper returns a reaper ticking every interval, or every
// minute when interval is not positive.
func NewResetCodeReaper(users store.UserRepository, interval time.Duration, logger *logger.Logger) *ResetCodeReaper {
	if interval <= 0 {
		interval = defaultReapInterval
	}

	return &ResetCodeReaper{
		users:    users,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (r *ResetCodeReaper) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	r.logger.Info().Str("func", "*ResetCodeReaper.Run").Dur("interval", r.interval).Msg("reset code reaper started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Str("func", "*ResetCodeReaper.Run").Msg("reset code reaper stopped")
			return
		case <-t.C:
			r.reap(ctx)
		}
	}
}

func (r *ResetCodeReaper) reap(ctx context.Context) {
	cleared, err := r.users.ClearExpiredResetCodes(ctx, r.now())
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Err(err).Str("func", "*ResetCodeReaper.reap").Msg("clearing expired reset codes failed")
		}
		return
	}

	if cleared > 0 {
		r.logger.Info().Str("func", "*ResetCodeReaper.reap").Int64("cleared", cleared).Msg("expired reset codes cleared")
	}
}
