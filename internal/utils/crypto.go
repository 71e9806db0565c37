// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const base36 = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShortID returns a lowercase base36 identifier, used for review ids.
func GenerateShortID(length int) (string, error) {
	return randomFromCharset(base36, length)
}

// RandomIntn returns a uniform random integer in [0, n).
func RandomIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func randomFromCharset(charset string, length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}
