// internal/store/code.go
//
// Short shareable game codes. Six characters from an alphabet that drops
// the visually ambiguous ones (0/O, 1/I/L), generated with crypto-grade
// randomness and rejection-sampled against the store so a live game never
// gets shadowed. Allocation gives up after a bounded number of collisions
// rather than looping forever.

package store

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// codeAlphabet excludes 0, O, 1, I and L.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// CodeLength is the fixed length of a game code.
const CodeLength = 6

// maxCodeAttempts bounds rejection sampling before giving up.
const maxCodeAttempts = 10

// ErrCodesExhausted is returned when every attempted code collided.
var ErrCodesExhausted = errors.New("could not allocate an unused game code")

// RandomCode returns one candidate code. Indices are drawn with
// crypto/rand.Int, which is rejection-sampled internally, so the alphabet
// is used uniformly.
func RandomCode() (string, error) {
	buf := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw code char: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// NewCode allocates a code not currently present in s, retrying up to
// maxCodeAttempts times. Store read failures are returned as-is; only
// genuine collisions count against the attempt budget.
func NewCode(ctx context.Context, s Store) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := RandomCode()
		if err != nil {
			return "", err
		}
		_, err = s.Get(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("check code availability: %w", err)
		}
	}
	return "", ErrCodesExhausted
}
