// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when inserting a user whose email
	// (compared case-insensitively) is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrResetCodeMismatch is returned when no user holds the given reset
	// code with an expiry still in the future.
	ErrResetCodeMismatch = errors.New("reset code does not match or has expired")

	// ErrProductNotFound is returned when a product lookup or a cart insert
	// references a product id that does not exist.
	ErrProductNotFound = errors.New("product was not found")

	// ErrProductNameTaken is returned when creating or renaming a product
	// would duplicate an existing name.
	ErrProductNameTaken = errors.New("product name already exists")

	// ErrCartLineNotFound is returned when an update targets a cart line
	// that does not exist for the given user.
	ErrCartLineNotFound = errors.New("cart line was not found")

	// ErrQuantityOutOfRange is returned when a cart line quantity would
	// leave the range allowed by cart_lines_quantity_check or overflow the
	// column.
	ErrQuantityOutOfRange = errors.New("cart line quantity out of range")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
