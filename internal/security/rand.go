// Package security holds the random-identifier generators for room codes
// and session tokens. Identifiers are drawn from a large alphanumeric space
// with crypto-strength randomness so they cannot be derived from user input.
package security

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

// Alphabet used for room codes and session ids.
const alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generator returns a fresh random identifier on each call.
type Generator func() string

// NewGenerator builds an alphanumeric id generator of the given length.
func NewGenerator(length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(alphanumeric, length)
	if err != nil {
		return nil, fmt.Errorf("nanoid.CustomASCII: %w", err)
	}
	return Generator(gen), nil
}
