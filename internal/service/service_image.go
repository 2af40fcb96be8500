// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/treasured-fragrances/internal/blob"
	"github.com/MKhiriev/treasured-fragrances/internal/logger"
	"github.com/MKhiriev/treasured-fragrances/internal/validators"
	"github.com/MKhiriev/treasured-fragrances/models"
)

type imageService struct {
	images    blob.ImageStore
	validator validators.Validator

	logger *logger.Logger
}

// NewImageService constructs an ImageService backed by images.
func NewImageService(images blob.ImageStore, validator validators.Validator, logger *logger.Logger) ImageService {
	return &imageService{
		images:    images,
		validator: validator,
		logger:    logger,
	}
}

func (s *imageService) PresignUpload(ctx context.Context, contentType string) (models.PresignedUpload, error) {
	if err := s.validator.Validate(ctx, models.PresignUploadRequest{ContentType: contentType}); err != nil {
		return models.PresignedUpload{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	upload, err := s.images.PresignUpload(ctx, contentType)
	if err != nil {
		return models.PresignedUpload{}, s.mapError(ctx, "presigning upload failed", err)
	}

	return upload, nil
}

func (s *imageService) DeleteImage(ctx context.Context, key string) error {
	if err := s.validator.Validate(ctx, models.DeleteImageRequest{Key: key}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.images.DeleteImage(ctx, key); err != nil {
		return s.mapError(ctx, "image deletion failed", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*imageService.DeleteImage").Str("key", key).Msg("image deleted")
	return nil
}

func (s *imageService) mapError(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, blob.ErrStoreDisabled):
		return ErrImageStoreDisabled
	case errors.Is(err, blob.ErrUnsupportedContentType),
		errors.Is(err, blob.ErrEmptyKey),
		errors.Is(err, blob.ErrForeignKey):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	default:
		logger.FromContext(ctx).Err(err).Str("func", "*imageService").Msg(msg)
		return fmt.Errorf("%s: %w", msg, err)
	}
}
