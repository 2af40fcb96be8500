// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Role is the closed set of authorization roles an account can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole converts a stored or configured role name into a [Role].
// Unknown names are rejected so that no code path can act on a role the
// authorization layer does not know about.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ParseRoles converts a list of role names, failing on the first unknown one.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r Role) String() string {
	return string(r)
}

// User is an authenticatable account record as stored in the "users" table.
// PasswordHash and the reset-code pair never leave the server: they carry
// json:"-" and handlers only ever serialise [Identity].
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`

	// ResetCode and ResetCodeExpiresAt are either both nil or both set.
	ResetCode          *string    `json:"-"`
	ResetCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary strips every credential field and returns the caller-facing view
// of the account.
func (u User) Summary() Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// HasActiveResetCode reports whether a reset code is set and still valid at now.
func (u User) HasActiveResetCode(now time.Time) bool {
	return u.ResetCode != nil && u.ResetCodeExpiresAt != nil && now.Before(*u.ResetCodeExpiresAt)
}

// Identity is the authenticated caller established by the authorization
// middleware. It is passed explicitly to every service call that acts on
// behalf of a caller.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// HasRole reports whether the identity holds any of the given roles.
func (i Identity) HasRole(roles ...Role) bool {
	return slices.Contains(roles, i.Role)
}

// NormalizeEmail lower-cases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
