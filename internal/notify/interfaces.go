// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers transactional email. Three transports are
// available: SMTP, the MailerSend API and a development transport that only
// writes to the log.
package notify

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// Notifier delivers a single message. Implementations must honour ctx
// cancellation and deadlines.
type Notifier interface {
	Deliver(ctx context.Context, msg models.Message) error
}
