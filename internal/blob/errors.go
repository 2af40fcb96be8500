// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package blob

import "errors"

var (
	// ErrStoreDisabled is returned when no bucket is configured.
	ErrStoreDisabled = errors.New("image store is not configured")

	// ErrUnsupportedContentType is returned for uploads that are not images
	// of an accepted type.
	ErrUnsupportedContentType = errors.New("unsupported image content type")

	// ErrEmptyKey is returned by DeleteImage for a blank key.
	ErrEmptyKey = errors.New("image key is required")

	// ErrForeignKey is returned by DeleteImage for keys outside the product
	// image prefix.
	ErrForeignKey = errors.New("image key is outside the product prefix")
)
