// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"strconv"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the suite fast
var testParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(testParams)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")
	assert.NotContains(t, hash, "correct horse")

	ok, err := h.Compare("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	h := NewPasswordHasher(testParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_LegacyBcrypt(t *testing.T) {
	h := NewPasswordHasher(testParams)

	legacy, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Compare("old-secret", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("nope", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_UnsupportedFormat(t *testing.T) {
	h := NewPasswordHasher(testParams)

	_, err := h.Compare("pw", "plaintext-password")
	assert.ErrorIs(t, err, ErrUnsupportedHash)
}

func TestPasswordHasher_CompareDummyDoesNotPanic(t *testing.T) {
	h := NewPasswordHasher(testParams)
	assert.NotPanics(t, func() { h.CompareDummy("anything") })
}

func TestResetCodeGenerator_Range(t *testing.T) {
	g := NewResetCodeGenerator()

	for range 1000 {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, ResetCodeLength)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, ResetCodeMin)
		assert.LessOrEqual(t, n, ResetCodeMax)
	}
}

func TestResetCodeGenerator_NotConstant(t *testing.T) {
	g := NewResetCodeGenerator()

	seen := make(map[string]struct{})
	for range 50 {
		code, err := g.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
