// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"strings"

	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/rs/zerolog"
)

// logNotifier records that a message would have been sent without sending
// it. The body holds a live reset code, so only the envelope is logged.
type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a Notifier that only logs.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (n *logNotifier) Deliver(ctx context.Context, msg models.Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrEmptyRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = n.logger
	}

	log.Warn().
		Str("func", "*logNotifier.Deliver").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Text)+len(msg.HTML)).
		Msg("email not sent, log transport is for development only")

	return nil
}
