package credential

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Alphabet is the symbol set temporary passwords and salts are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generate returns n symbols drawn uniformly and independently from Alphabet.
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("credential length must be positive")
	}
	var builder strings.Builder
	builder.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		builder.WriteByte(Alphabet[idx.Int64()])
	}
	return builder.String(), nil
}
