// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Role
		wantErr bool
	}{
		{name: "admin", in: "admin", want: RoleAdmin},
		{name: "customer upper case", in: " CUSTOMER ", want: RoleCustomer},
		{name: "unknown", in: "superuser", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoles_FailsOnUnknown(t *testing.T) {
	_, err := ParseRoles([]string{"admin", "guest"})
	require.Error(t, err)

	roles, err := ParseRoles([]string{"admin", "customer"})
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleAdmin, RoleCustomer}, roles)
}

func TestUser_SummaryDropsSecrets(t *testing.T) {
	code := "12345"
	exp := time.Now().Add(time.Minute)
	u := User{
		ID:                 "u-1",
		Email:              "a@x.com",
		Name:               "Alice",
		PasswordHash:       "$argon2id$...",
		Role:               RoleAdmin,
		ResetCode:          &code,
		ResetCodeExpiresAt: &exp,
	}

	id := u.Summary()
	assert.Equal(t, Identity{ID: "u-1", Email: "a@x.com", Name: "Alice", Role: RoleAdmin}, id)

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "argon2id")
	assert.NotContains(t, string(raw), code)
}

func TestUser_HasActiveResetCode(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	code := "12345"
	exp := now.Add(10 * time.Minute)

	u := User{ResetCode: &code, ResetCodeExpiresAt: &exp}
	assert.True(t, u.HasActiveResetCode(now.Add(9*time.Minute+59*time.Second)))
	assert.False(t, u.HasActiveResetCode(now.Add(10*time.Minute+time.Second)))
	assert.False(t, User{}.HasActiveResetCode(now))
}

func TestIdentity_HasRole(t *testing.T) {
	id := Identity{Role: RoleCustomer}
	assert.True(t, id.HasRole(RoleAdmin, RoleCustomer))
	assert.False(t, id.HasRole(RoleAdmin))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}

func TestCart_Totals(t *testing.T) {
	cart := Cart{
		{Product: Product{PriceCents: 1500}, Quantity: 2},
		{Product: Product{PriceCents: 999}, Quantity: 1},
	}
	assert.Equal(t, 3, cart.TotalQuantity())
	assert.Equal(t, int64(3999), cart.Subtotal())
}

func TestAddToCartRequest_Units(t *testing.T) {
	three, zero := 3, 0
	assert.Equal(t, 1, AddToCartRequest{}.Units())
	assert.Equal(t, 3, AddToCartRequest{Quantity: &three}.Units())
	assert.Equal(t, 0, AddToCartRequest{Quantity: &zero}.Units())
}
