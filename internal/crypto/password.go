// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUnsupportedHash is returned by Compare for hashes in an unknown format.
	ErrUnsupportedHash = errors.New("unsupported password hash format")
)

// dummy salt and key used to build the timing-equalisation hash.
const (
	dummySalt = "dHJlYXN1cmVkLWR1bW15IQ"
	dummyKey  = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8"
)

type argon2idHasher struct {
	params    *argon2id.Params
	dummyHash string
}

// NewPasswordHasher returns a PasswordHasher that creates argon2id hashes
// with params (argon2id.DefaultParams when nil) and also verifies legacy
// bcrypt hashes.
func NewPasswordHasher(params *argon2id.Params) PasswordHasher {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return &argon2idHasher{
		params: params,
		dummyHash: fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2.Version, params.Memory, params.Iterations, params.Parallelism, dummySalt, dummyKey),
	}
}

func (h *argon2idHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}

func (h *argon2idHasher) Compare(password, encodedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		match, err := argon2id.ComparePasswordAndHash(password, encodedHash)
		if err != nil {
			return false, fmt.Errorf("error comparing argon2id hash: %w", err)
		}
		return match, nil
	case isBcrypt(encodedHash):
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("error comparing bcrypt hash: %w", err)
		}
		return true, nil
	default:
		return false, ErrUnsupportedHash
	}
}

func (h *argon2idHasher) CompareDummy(password string) {
	_, _ = argon2id.ComparePasswordAndHash(password, h.dummyHash)
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
