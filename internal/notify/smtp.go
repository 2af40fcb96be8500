// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// smtpNotifier sends multipart/alternative mail through an SMTP relay.
// It upgrades with STARTTLS when the server offers it, or dials TLS directly
// when implicitTLS is set (port 465 style relays).
type smtpNotifier struct {
	host        string
	port        int
	user        string
	pass        string
	from        mail.Address
	implicitTLS bool
	tlsConfig   *tls.Config
}

// NewSMTPNotifier returns a Notifier backed by the SMTP relay in cfg.
func NewSMTPNotifier(cfg config.Notifier) Notifier {
	host := strings.TrimSpace(cfg.SMTPHost)
	return &smtpNotifier{
		host:        host,
		port:        cfg.SMTPPort,
		user:        strings.TrimSpace(cfg.SMTPUser),
		pass:        cfg.SMTPPassword,
		from:        mail.Address{Name: cfg.FromName, Address: strings.TrimSpace(cfg.FromEmail)},
		implicitTLS: cfg.SMTPImplicitTLS,
		tlsConfig:   &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12},
	}
}

func (s *smtpNotifier) Deliver(ctx context.Context, msg models.Message) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return ErrEmptyRecipient
	}

	body, err := buildMIMEMessage(s.from, mail.Address{Name: msg.ToName, Address: to}, msg, time.Now())
	if err != nil {
		return err
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	// net/smtp has no context support, so bound the whole exchange by the
	// context deadline instead.
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if err = s.send(conn, to, body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp send: %w", ctxErr)
		}
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *smtpNotifier) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	if s.implicitTLS {
		d := &tls.Dialer{Config: s.tlsConfig}
		return d.DialContext(ctx, "tcp", addr)
	}
	d := &net.Dialer{}
	return d.DialContext(ctx, "tcp", addr)
}

func (s *smtpNotifier) send(conn net.Conn, to string, body []byte) error {
	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer c.Close()

	if !s.implicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(s.tlsConfig); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if s.user != "" {
		if err = c.Auth(smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err = c.Mail(s.from.Address); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(body); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

// buildMIMEMessage renders msg as a multipart/alternative message with a
// plain-text and an HTML part.
func buildMIMEMessage(from, to mail.Address, msg models.Message, now time.Time) ([]byte, error) {
	var parts bytes.Buffer
	mw := multipart.NewWriter(&parts)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	} {
		if part.content == "" {
			continue
		}
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, err
		}
		if _, err = w.Write([]byte(normalizeNewlines(part.content))); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())
	buf.Write(parts.Bytes())

	return buf.Bytes(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
