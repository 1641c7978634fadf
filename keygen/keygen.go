// Package keygen generates the random key suffixes for short URLs.
package keygen

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// charset defines the character set used for generated suffixes.
// Lowercase letters and digits only, so keys stay case-insensitive-safe in
// URLs and object keys.
const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate creates a random string of n characters drawn uniformly from the
// 36-symbol alphabet using a cryptographically secure source. Callers must
// pass n > 0; configuration validation enforces this upstream.
func Generate(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)

	charsetLength := big.NewInt(int64(len(charset)))

	for i := 0; i < n; i++ {
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[randomIndex.Int64()])
	}
	return sb.String(), nil
}
