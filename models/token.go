// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by a session token: the registered
// claims (sub = user id, iss, iat, exp) plus the role the account held
// when the token was issued.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// Token wraps a signed session token together with the values the
// authorization middleware needs after verification.
type Token struct {
	// Token is the underlying JWT. Excluded from JSON because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation sent to the client.
	SignedString string `json:"-"`

	// UserID is the "sub" claim.
	UserID string `json:"-"`

	// Role is the custom "role" claim.
	Role Role `json:"-"`

	// ExpiresAt is the "exp" claim.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
