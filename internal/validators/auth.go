// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// Field names understood by AuthValidator.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldCode        = "code"
	FieldNewPassword = "new_password"
)

// maxPasswordBytes bounds the input handed to the password hasher.
const maxPasswordBytes = 256

// AuthValidator validates the bodies of the authentication and password
// reset endpoints.
type AuthValidator struct {
	minPasswordLength int
}

// NewAuthValidator returns a Validator enforcing minPasswordLength
// characters on new passwords.
func NewAuthValidator(minPasswordLength int) Validator {
	if minPasswordLength < 1 {
		minPasswordLength = 1
	}
	return &AuthValidator{minPasswordLength: minPasswordLength}
}

// Validate accepts LoginRequest, ForgotPasswordRequest, VerifyCodeRequest
// and ResetPasswordRequest by value or pointer.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ForgotPasswordRequest:
		return v.validateForgot(value, fields...)
	case *models.ForgotPasswordRequest:
		return v.validateForgot(*value, fields...)

	case models.VerifyCodeRequest:
		return v.validateVerify(value, fields...)
	case *models.VerifyCodeRequest:
		return v.validateVerify(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateReset(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateReset(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			// login never enforces the current length policy, only presence
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *AuthValidator) validateForgot(req models.ForgotPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(req.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *AuthValidator) validateVerify(req models.VerifyCodeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldCode}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldCode:
			if !IsResetCode(req.Code) {
				return ErrInvalidResetCode
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *AuthValidator) validateReset(req models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldCode, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldCode:
			if !IsResetCode(req.Code) {
				return ErrInvalidResetCode
			}
		case FieldNewPassword:
			if err := v.checkPassword(req.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *AuthValidator) checkPassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case utf8.RuneCountInString(password) < v.minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// IsEmail reports whether s is a bare RFC 5322 address with a dotted domain.
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	_, domain, ok := strings.Cut(addr.Address, "@")
	return ok && strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

// IsResetCode reports whether s is exactly five ASCII digits.
func IsResetCode(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
