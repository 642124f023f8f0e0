package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// generateNumericCode returns a uniformly random code of the given number
// of decimal digits, left padded with zeros. Lengths outside 4..10 are
// rejected so a misconfigured deployment cannot issue guessable codes.
func generateNumericCode(length int) (string, error) {
	if length < 4 || length > 10 {
		return "", fmt.Errorf("code length %d out of range [4,10]", length)
	}

	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}

	code := n.String()
	if len(code) < length {
		code = strings.Repeat("0", length-len(code)) + code
	}
	return code, nil
}
