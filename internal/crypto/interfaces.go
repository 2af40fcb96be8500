// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server-side credential primitives: password
// hashing and one-time reset code generation.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher derives and verifies password hashes.
//
// Hashes are self-describing PHC strings, so Compare can verify hashes
// produced with older parameters or by a different algorithm.
type PasswordHasher interface {
	// Hash derives a new encoded hash for password.
	Hash(password string) (string, error)

	// Compare reports whether password matches encodedHash in constant time.
	Compare(password, encodedHash string) (bool, error)

	// CompareDummy performs a full-cost comparison against a fixed hash.
	// It is used when no account exists so that response timing does not
	// reveal whether an email is registered.
	CompareDummy(password string)
}

// CodeGenerator produces one-time numeric reset codes.
type CodeGenerator interface {
	// Generate returns a fresh code drawn from a cryptographically secure
	// source.
	Generate() (string, error)
}
