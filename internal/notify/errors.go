// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import "errors"

var (
	// ErrEmptyRecipient is returned when a message has no recipient address.
	ErrEmptyRecipient = errors.New("empty recipient email")

	// ErrUnknownTransport is returned by NewNotifier for an unsupported
	// transport name.
	ErrUnknownTransport = errors.New("unknown notifier transport")

	// ErrDeliveryRejected is returned when the provider answers with a
	// non-2xx status.
	ErrDeliveryRejected = errors.New("message rejected by provider")
)
