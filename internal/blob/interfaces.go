// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package blob stores product images in an S3-compatible bucket. Browsers
// upload directly with presigned PUT URLs; the server only signs requests
// and deletes objects.
package blob

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/treasured-fragrances/models"
)

// ImageStore issues upload URLs and deletes stored images.
type ImageStore interface {
	// PresignUpload reserves a fresh key and returns a URL the client can PUT
	// an object of contentType to.
	PresignUpload(ctx context.Context, contentType string) (models.PresignedUpload, error)

	// DeleteImage removes the object at key. Deleting a missing key is not an
	// error.
	DeleteImage(ctx context.Context, key string) error
}
