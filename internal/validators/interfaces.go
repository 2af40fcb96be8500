// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request bodies before they reach the services.
//
// AuthValidator covers the login and password-reset bodies, CatalogValidator
// covers products and image uploads. Both return the sentinels from
// errors.go so the HTTP layer can map them to 400 responses with a readable
// message.
package validators

import "context"

// Validator validates obj. When fields are given only those fields are
// checked, in the given order, and the first failure is returned.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
