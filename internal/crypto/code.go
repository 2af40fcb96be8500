// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Reset codes are uniform over [ResetCodeMin, ResetCodeMax].
const (
	ResetCodeMin    = 10000
	ResetCodeMax    = 99999
	ResetCodeLength = 5
)

type resetCodeGenerator struct {
	span *big.Int
}

// NewResetCodeGenerator returns a CodeGenerator producing 5-digit codes.
func NewResetCodeGenerator() CodeGenerator {
	return &resetCodeGenerator{span: big.NewInt(ResetCodeMax - ResetCodeMin + 1)}
}

func (g *resetCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, g.span)
	if err != nil {
		return "", fmt.Errorf("error reading random source: %w", err)
	}

	return fmt.Sprintf("%d", n.Int64()+ResetCodeMin), nil
}
