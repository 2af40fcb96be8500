// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command seed loads the product catalog from a JSON file, replacing
// whatever is there. Without -file the bundled catalog is used; -d only
// empties the catalog.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/treasured-fragrances/internal/config"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/store"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
)

func main() {
	var (
		destroy bool
		file    string
	)
	flag.BoolVar(&destroy, "d", false, "Delete every product and exit")
	flag.StringVar(&file, "file", "", "Catalog JSON file (defaults to the bundled catalog)")
	flag.Parse()

	log := logger.NewLogger("treasured-seed")

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

	s := &seeder{
		products:  storages.ProductRepository,
		validator: validators.NewCatalogValidator(),
	}

	if destroy {
		deleted, err := s.destroyCatalog(ctx)
		if err != nil {
			log.Error().Err(err).Msg("catalog was not destroyed")
			storages.Close()
			os.Exit(1)
		}
		log.Info().Int64("deleted", deleted).Msg("catalog destroyed")
		return
	}

	var src io.Reader = bytes.NewReader(defaultCatalog)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("error opening catalog file")
			storages.Close()
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}

	products, err := readCatalog(src)
	if err != nil {
		log.Error().Err(err).Str("file", file).Msg("catalog file rejected")
		storages.Close()
		os.Exit(1)
	}

	imported, err := s.importCatalog(ctx, products)
	if err != nil {
		log.Error().Err(err).Int("imported", imported).Msg("catalog import failed")
		storages.Close()
		os.Exit(1)
	}

	log.Info().Int("imported", imported).Msg("catalog imported")
}
