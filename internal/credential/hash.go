package credential

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 600000
	saltLength        = 16
	methodPrefix      = "pbkdf2"
)

var ErrMalformedHash = errors.New("malformed password hash")

// Hasher produces salted PBKDF2 hashes in the "pbkdf2:<digest>:<iterations>$<salt>$<hex>"
// layout used by the accounts tables, so hashes written here verify with the
// login code that reads them.
type Hasher struct {
	Iterations int
}

func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{Iterations: iterations}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	salt, err := Generate(saltLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	sum := pbkdf2.Key([]byte(password), []byte(salt), h.Iterations, sha256.Size, sha256.New)
	method := methodPrefix + ":sha256:" + strconv.Itoa(h.Iterations)
	return method + "$" + salt + "$" + hex.EncodeToString(sum), nil
}

// Verify reports whether password matches the stored hash. The digest and
// iteration count are taken from the stored value, not from h.
func (h *Hasher) Verify(password, stored string) (bool, error) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false, ErrMalformedHash
	}
	method, salt, want := parts[0], parts[1], parts[2]

	digest, size, iterations, err := parseMethod(method)
	if err != nil {
		return false, err
	}
	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) != size {
		return false, ErrMalformedHash
	}

	sum := pbkdf2.Key([]byte(password), []byte(salt), iterations, size, digest)
	return subtle.ConstantTimeCompare(sum, expected) == 1, nil
}

func parseMethod(method string) (func() hash.Hash, int, int, error) {
	fields := strings.Split(method, ":")
	if fields[0] != methodPrefix || len(fields) > 3 {
		return nil, 0, 0, ErrMalformedHash
	}

	name := "sha256"
	if len(fields) > 1 {
		name = fields[1]
	}
	iterations := DefaultIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return nil, 0, 0, ErrMalformedHash
		}
		iterations = n
	}

	switch name {
	case "sha256":
		return sha256.New, sha256.Size, iterations, nil
	case "sha512":
		return sha512.New, sha512.Size, iterations, nil
	default:
		return nil, 0, 0, fmt.Errorf("%w: unsupported digest %q", ErrMalformedHash, name)
	}
}
