// Package kdf provides the closed set of password key-derivation functions
// supported by jotter files.
package kdf

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KeySize is the length in bytes of every derived key.
const KeySize = 32

// ID identifies a key-derivation algorithm together with its default parameters.
type ID byte

const (
	// Argon2 is Argon2id.
	Argon2 ID = iota + 1
	// Scrypt is scrypt.
	Scrypt
	// PBKDF2 is PBKDF2 with HMAC-SHA256.
	PBKDF2
)

// Default is the algorithm used for new files when nothing else is configured.
const Default = Argon2

const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	pbkdf2Iterations = 600_000
)

// ErrEmptySalt is returned when a derivation is attempted without a salt.
var ErrEmptySalt = errors.New("empty salt")

// Deriver derives a KeySize-byte key from a password and a salt.
// It is deterministic in its inputs.
type Deriver func(password, salt []byte) ([]byte, error)

var names = map[ID]string{
	Argon2: "argon2",
	Scrypt: "scrypt",
	PBKDF2: "pbkdf2",
}

// Known returns all supported identifiers in a stable order.
func Known() []ID {
	return []ID{Argon2, Scrypt, PBKDF2}
}

// Names returns the canonical names of all supported identifiers.
func Names() []string {
	known := Known()

	out := make([]string, 0, len(known))
	for _, id := range known {
		out = append(out, id.String())
	}

	return out
}

// String returns the canonical name of the identifier.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}

	return fmt.Sprintf("kdf(%d)", byte(id))
}

// Valid reports whether id is one of the known identifiers.
func (id ID) Valid() bool {
	_, ok := names[id]

	return ok
}

// Parse maps a canonical name to its identifier.
func Parse(name string) (ID, bool) {
	for id, n := range names {
		if n == name {
			return id, true
		}
	}

	return 0, false
}

// Resolve maps a name to its identifier, returning fallback for unknown names.
func Resolve(name string, fallback ID) ID {
	if id, ok := Parse(name); ok {
		return id
	}

	return fallback
}

// Deriver returns the derivation function bound to the algorithm's default parameters.
// It returns nil for unknown identifiers.
func (id ID) Deriver() Deriver {
	switch id {
	case Argon2:
		return func(password, salt []byte) ([]byte, error) {
			return argon2.IDKey(password, salt, argon2Time, argon2Memory, argon2Threads, KeySize), nil
		}
	case Scrypt:
		return func(password, salt []byte) ([]byte, error) {
			key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, KeySize)
			if err != nil {
				return nil, fmt.Errorf("scrypt: %w", err)
			}

			return key, nil
		}
	case PBKDF2:
		return func(password, salt []byte) ([]byte, error) {
			return pbkdf2.Key(password, salt, pbkdf2Iterations, KeySize, sha256.New), nil
		}
	default:
		return nil
	}
}

// Derive runs the algorithm's deriver over password and salt.
func (id ID) Derive(password, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}

	deriver := id.Deriver()
	if deriver == nil {
		return nil, fmt.Errorf("unknown key derivation function %s", id)
	}

	return deriver(password, salt)
}
