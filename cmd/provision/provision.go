// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

type accountParams struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type provisioner struct {
	users     store.UserRepository
	hasher    crypto.PasswordHasher
	validator validators.Validator
}

// provision validates params, hashes the password and stores the account.
// A taken email surfaces as store.ErrEmailAlreadyExists.
func (p *provisioner) provision(ctx context.Context, params accountParams) (models.User, error) {
	role, err := models.ParseRole(params.Role)
	if err != nil {
		return models.User{}, err
	}

	req := models.ResetPasswordRequest{Email: params.Email, NewPassword: params.Password}
	if err = p.validator.Validate(ctx, req, validators.FieldEmail, validators.FieldNewPassword); err != nil {
		return models.User{}, fmt.Errorf("invalid account: %w", err)
	}

	hash, err := p.hasher.Hash(params.Password)
	if err != nil {
		return models.User{}, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name, _, _ = strings.Cut(models.NormalizeEmail(params.Email), "@")
	}

	user, err := p.users.CreateUser(ctx, models.User{
		Email:        models.NormalizeEmail(params.Email),
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("error creating account: %w", err)
	}

	return user, nil
}
