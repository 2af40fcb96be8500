// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
)

// NewNotifier builds the transport selected by cfg.Transport.
func NewNotifier(cfg config.Notifier, log *logger.Logger) (Notifier, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		log.Info().Str("func", "NewNotifier").Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Msg("using smtp transport")
		return NewSMTPNotifier(cfg), nil
	case config.TransportMailerSend:
		log.Info().Str("func", "NewNotifier").Msg("using mailersend transport")
		return NewMailerSendNotifier(cfg), nil
	case config.TransportLog, "":
		log.Warn().Str("func", "NewNotifier").Msg("using log transport, emails are not delivered")
		return NewLogNotifier(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}
