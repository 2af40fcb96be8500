// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs)
	}

	if cfg.App.ResetCodeTTL <= 0 {
		return fmt.Errorf("%w: reset code ttl must be positive", ErrInvalidAppConfigs)
	}

	if _, err := models.ParseRoles(cfg.App.ResetRoles); err != nil {
		return fmt.Errorf("%w: reset roles: %w", ErrInvalidAppConfigs, err)
	}

	loginRoles, err := models.ParseRoles(cfg.App.LoginRoles)
	if err != nil || len(loginRoles) == 0 {
		return fmt.Errorf("%w: at least one valid login role is required", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and request timeout are required", ErrInvalidServerConfigs)
	}

	switch cfg.Notifier.Transport {
	case TransportLog:
	case TransportSMTP:
		if cfg.Notifier.SMTPHost == "" || cfg.Notifier.FromEmail == "" {
			return fmt.Errorf("%w: smtp transport needs host and from address", ErrInvalidNotifierConfigs)
		}
	case TransportMailerSend:
		if cfg.Notifier.MailerSendAPIKey == "" || cfg.Notifier.FromEmail == "" {
			return fmt.Errorf("%w: mailersend transport needs api key and from address", ErrInvalidNotifierConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidNotifierConfigs, cfg.Notifier.Transport)
	}

	if cfg.Notifier.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidNotifierConfigs)
	}

	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: requests and window must be positive", ErrInvalidRateLimitConfigs)
	}

	if cfg.Workers.ResetReaperInterval <= 0 {
		return fmt.Errorf("%w: reset reaper interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
