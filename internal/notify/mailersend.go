// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/mailersend/mailersend-go"
)

// mailerSendNotifier delivers through the MailerSend HTTP API.
type mailerSendNotifier struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

// NewMailerSendNotifier returns a Notifier that posts to MailerSend. It is
// disabled, and every Deliver fails, when the API key or sender is missing.
func NewMailerSendNotifier(cfg config.Notifier) Notifier {
	n := &mailerSendNotifier{
		enabled: cfg.MailerSendAPIKey != "" && cfg.FromEmail != "",
		from: mailersend.From{
			Name:  cfg.FromName,
			Email: cfg.FromEmail,
		},
	}
	if n.enabled {
		n.client = mailersend.NewMailersend(cfg.MailerSendAPIKey)
	}
	return n
}

func (n *mailerSendNotifier) Deliver(ctx context.Context, msg models.Message) error {
	if !n.enabled {
		return errors.New("mailersend disabled (missing API key or sender)")
	}
	if strings.TrimSpace(msg.To) == "" {
		return ErrEmptyRecipient
	}

	message := n.client.Email.NewMessage()
	message.SetFrom(n.from)
	message.SetRecipients([]mailersend.Recipient{{Name: msg.ToName, Email: msg.To}})
	message.SetSubject(msg.Subject)
	if strings.TrimSpace(msg.Text) != "" {
		message.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		message.SetHTML(msg.HTML)
	}

	// a rejected send returns the response together with the error
	res, err := n.client.Email.Send(ctx, message)
	if res != nil && res.Body != nil {
		defer func() {
			_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
			_ = res.Body.Close()
		}()
	}
	if err != nil {
		if res != nil && (res.StatusCode < 200 || res.StatusCode >= 300) {
			return fmt.Errorf("%w: status=%d: %v", ErrDeliveryRejected, res.StatusCode, err)
		}
		return fmt.Errorf("mailersend send: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*mailerSendNotifier.Deliver").
		Str("message_id", res.Header.Get("X-Message-Id")).
		Msg("email accepted by mailersend")

	return nil
}
