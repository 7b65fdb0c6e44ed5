// Package pwgen generates random passwords.
package pwgen

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

// Strategy selects the alphabet of a generated password.
type Strategy int

const (
	// Base64 encodes random bytes with the standard base64 alphabet.
	Base64 Strategy = iota
	// Hex encodes random bytes as lowercase hexadecimal.
	Hex
	// Special draws characters from letters, digits and punctuation.
	Special
)

const (
	// DefaultStrategy is used when nothing else is configured.
	DefaultStrategy = Base64
	// DefaultSecLevel is used when nothing else is configured.
	DefaultSecLevel = 9
	// MaxSecLevel is the first level that is no longer accepted.
	MaxSecLevel = 24
)

// specialAlphabet has 75 symbols, so every character carries more than 6 bits.
const specialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$%&*+-=?@^_"

var strategyNames = map[Strategy]string{
	Base64:  "base64",
	Hex:     "hex",
	Special: "special",
}

// Strategies returns the canonical names of all strategies.
func Strategies() []string {
	return []string{Base64.String(), Hex.String(), Special.String()}
}

// String returns the canonical name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}

	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy maps a canonical name to its strategy.
func ParseStrategy(name string) (Strategy, bool) {
	for s, n := range strategyNames {
		if n == name {
			return s, true
		}
	}

	return 0, false
}

// ValidSecLevel reports whether level is accepted by Generate.
func ValidSecLevel(level int) bool {
	return level >= 0 && level < MaxSecLevel
}

// Bits returns the entropy in bits of a password generated at level.
func Bits(level int) int {
	return 24 * (level + 1)
}

// Generate returns a random password with at least Bits(level) bits of entropy.
func Generate(strategy Strategy, level int) (string, error) {
	if !ValidSecLevel(level) {
		return "", fmt.Errorf("security level %d out of range [0, %d)", level, MaxSecLevel)
	}

	switch strategy {
	case Base64:
		raw, err := randomBytes(Bits(level) / 8)
		if err != nil {
			return "", err
		}

		return base64.StdEncoding.EncodeToString(raw), nil
	case Hex:
		raw, err := randomBytes(Bits(level) / 8)
		if err != nil {
			return "", err
		}

		return hex.EncodeToString(raw), nil
	case Special:
		return randomString(specialAlphabet, Bits(level)/6)
	default:
		return "", fmt.Errorf("unknown strategy %s", strategy)
	}
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}

	return buf, nil
}

func randomString(alphabet string, length int) (string, error) {
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)

	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("drawing random character: %w", err)
		}

		out[i] = alphabet[n.Int64()]
	}

	return string(out), nil
}
