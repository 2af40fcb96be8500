// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Message is an outbound email handed to a notification transport.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}
