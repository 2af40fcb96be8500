// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command provision creates an account directly in the database. It is the
// only way to create accounts, since public registration is disabled.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
)

func main() {
	var params accountParams
	flag.StringVar(&params.Email, "email", "", "Account email")
	flag.StringVar(&params.Name, "name", "", "Display name")
	flag.StringVar(&params.Password, "password", "", "Initial password")
	flag.StringVar(&params.Role, "role", "customer", "Account role: admin or customer")
	flag.Parse()

	log := logger.NewLogger("treasured-provision")

	cfg, err := config.GetStructuredConfigWithoutFlags()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	p := &provisioner{
		users:     storages.UserRepository,
		hasher:    crypto.NewPasswordHasher(nil),
		validator: validators.NewAuthValidator(cfg.App.PasswordMinLength),
	}

	user, err := p.provision(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("email", params.Email).Msg("account was not created")
		storages.Close()
		os.Exit(1)
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Str("role", user.Role.String()).Msg("account created")
}
