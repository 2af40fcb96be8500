// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// ResetCodeSubject is the subject line of password reset emails.
const ResetCodeSubject = "Admin Password Reset Code"

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplate = template.Must(template.ParseFS(templateFS, "templates/email.html"))

// emailView feeds templates/email.html.
type emailView struct {
	Subject string
	Intro   []string
	Code    string
	Outro   []string
	Year    int
}

// NewResetCodeMessage renders the password reset email carrying code for
// recipient. ttl is quoted in the body as the code lifetime.
func NewResetCodeMessage(to, toName, code string, ttl time.Duration, now time.Time) (models.Message, error) {
	intro := []string{
		"You are receiving this email because you (or someone else) have requested the reset of a password for your admin account.",
		"Your 5-digit reset code is:",
	}
	outro := []string{
		fmt.Sprintf("This code will expire in %s.", humanizeMinutes(ttl)),
		"If you did not request this, please ignore this email.",
	}

	text := strings.Join(intro, "\n") + "\n\n" + code + "\n\n" + strings.Join(outro, "\n")

	var html bytes.Buffer
	err := emailTemplate.Execute(&html, emailView{
		Subject: ResetCodeSubject,
		Intro:   intro,
		Code:    code,
		Outro:   outro,
		Year:    now.Year(),
	})
	if err != nil {
		return models.Message{}, fmt.Errorf("error rendering reset email: %w", err)
	}

	return models.Message{
		To:      to,
		ToName:  toName,
		Subject: ResetCodeSubject,
		Text:    text,
		HTML:    html.String(),
	}, nil
}

func humanizeMinutes(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	if minutes < 1 {
		return d.String()
	}
	return fmt.Sprintf("%d minutes", minutes)
}
