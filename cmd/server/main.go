// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/treasured-fragrances/internal/blob"
	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/crypto"
	"github.com/MKhiriev/treasured-fragrances/internal/handler"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/notify"
	"github.com/MKhiriev/treasured-fragrances/internal/server"
	"github.com/MKhiriev/treasured-fragrances/internal/service"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/workers"
	"github.com/MKhiriev/treasured-fragrances/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const serverRole = "treasured-server"

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger(serverRole).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(serverRole, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	notifier, err := notify.NewNotifier(cfg.Notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier")
	}

	images, err := blob.NewImageStore(ctx, cfg.Blob, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating image store")
	}

	services, err := service.NewServices(storages, service.Dependencies{
		Hasher:    crypto.NewPasswordHasher(nil),
		Codes:     crypto.NewResetCodeGenerator(),
		Notifier:  notifier,
		Images:    images,
		BuildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
	}, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages.RateLimiter, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bgWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	bgWorkers.Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stop()
	bgWorkers.Wait()
	log.Info().Msg("server exited")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
