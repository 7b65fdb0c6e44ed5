package envelope

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/jotter/internal/kdf"
)

const keyInfoPrefix = "jotter/envelope/v1/"

// Key is derived key material. Destroy overwrites it.
type Key struct {
	b []byte
}

// Bytes returns the key bytes. They are invalid after Destroy.
func (k *Key) Bytes() []byte {
	return k.b
}

// Destroy wipes the key.
func (k *Key) Destroy() {
	memguard.WipeBytes(k.b)
	k.b = nil
}

// DeriveKey derives the AEAD key for password, algorithm and salt.
// The password-derived secret is expanded through HKDF-SHA256 with the
// algorithm name in the info string, so the key is bound to the algorithm.
func DeriveKey(password string, id kdf.ID, salt []byte) (*Key, error) {
	secret := []byte(password)
	defer memguard.WipeBytes(secret)

	master, err := id.Derive(secret, salt)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	defer memguard.WipeBytes(master)

	reader := hkdf.New(sha256.New, master, nil, []byte(keyInfoPrefix+id.String()))

	key := make([]byte, kdf.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("expanding key: %w", err)
	}

	return &Key{b: key}, nil
}
