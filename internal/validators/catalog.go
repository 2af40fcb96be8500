// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/treasured-fragrances/internal/utils"
	"github.com/MKhiriev/treasured-fragrances/models"
)

// Field names understood by CatalogValidator.
const (
	FieldProductID   = "product_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImg         = "img"
	FieldImgKey      = "img_key"
	FieldCategory    = "category"
	FieldKey         = "key"
	FieldContentType = "content_type"
)

// CatalogValidator validates products and image upload requests.
type CatalogValidator struct{}

// NewCatalogValidator constructs a new CatalogValidator.
func NewCatalogValidator() Validator {
	return &CatalogValidator{}
}

// Validate accepts Product, DeleteImageRequest and PresignUploadRequest by
// value or pointer.
func (v *CatalogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Product:
		return v.validateProduct(value, fields...)
	case *models.Product:
		return v.validateProduct(*value, fields...)

	case models.DeleteImageRequest:
		return v.validateDeleteImage(value, fields...)
	case *models.DeleteImageRequest:
		return v.validateDeleteImage(*value, fields...)

	case models.PresignUploadRequest:
		return v.validatePresign(value, fields...)
	case *models.PresignUploadRequest:
		return v.validatePresign(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateProduct checks the writable product fields. ID is not checked
// by default because it is assigned by storage on create; pass
// FieldProductID explicitly to require it.
func (v *CatalogValidator) validateProduct(p models.Product, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldDescription, FieldPrice, FieldImg, FieldImgKey, FieldCategory}
	}

	for _, f := range fields {
		switch f {
		case FieldProductID:
			if !utils.IsUUID(p.ID) {
				return ErrInvalidProductID
			}
		case FieldName:
			if isBlank(p.Name) {
				return ErrEmptyName
			}
		case FieldDescription:
			if isBlank(p.Description) {
				return ErrEmptyDescription
			}
		case FieldPrice:
			if p.PriceCents < 0 {
				return ErrNegativePrice
			}
		case FieldImg:
			if isBlank(p.Img) {
				return ErrEmptyImage
			}
		case FieldImgKey:
			if isBlank(p.ImgKey) {
				return ErrEmptyImageKey
			}
		case FieldCategory:
			if isBlank(p.Category) {
				return ErrEmptyCategory
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *CatalogValidator) validateDeleteImage(req models.DeleteImageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKey}
	}

	for _, f := range fields {
		switch f {
		case FieldKey:
			if isBlank(req.Key) {
				return ErrEmptyImageKey
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *CatalogValidator) validatePresign(req models.PresignUploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContentType}
	}

	for _, f := range fields {
		switch f {
		case FieldContentType:
			if isBlank(req.ContentType) {
				return ErrEmptyContentType
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
