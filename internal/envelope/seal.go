package envelope

import (
	"crypto/rand"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/idelchi/jotter/internal/kdf"
)

// CheckPassword rejects passwords that can never be used, before any derivation runs.
func CheckPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	if !utf8.ValidString(password) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidPassword)
	}

	for _, r := range password {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: contains control characters", ErrInvalidPassword)
		}
	}

	return nil
}

// Seal encrypts plaintext under a key derived from password with the given
// algorithm and returns the complete envelope.
func Seal(password string, id kdf.ID, plaintext []byte) ([]byte, error) {
	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	if !id.Valid() {
		return nil, fmt.Errorf("sealing: unknown key derivation function %s", id)
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	key, err := DeriveKey(password, id, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	primitive, err := newAEAD(key.Bytes())
	if err != nil {
		return nil, err
	}

	ad := associatedData(id, salt)

	// Tink draws a fresh random nonce per call and prepends it.
	sealed, err := primitive.Encrypt(plaintext, ad)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	if len(sealed) < NonceSize+tagSize {
		return nil, fmt.Errorf("encrypting: unexpected ciphertext length %d", len(sealed))
	}

	return marshalEnvelope(ad, sealed[:NonceSize], sealed[NonceSize:]), nil
}

// Open authenticates and decrypts an envelope produced by Seal.
// Every failure after the password check is reported as ErrCannotOpen.
func Open(password string, data []byte) ([]byte, error) {
	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	header, ad, ciphertext, err := parseEnvelope(data)
	if err != nil {
		return nil, ErrCannotOpen
	}

	key, err := DeriveKey(password, header.KDF, header.Salt)
	if err != nil {
		return nil, ErrCannotOpen
	}
	defer key.Destroy()

	primitive, err := newAEAD(key.Bytes())
	if err != nil {
		return nil, ErrCannotOpen
	}

	sealed := make([]byte, 0, len(header.Nonce)+len(ciphertext))
	sealed = append(sealed, header.Nonce...)
	sealed = append(sealed, ciphertext...)

	plaintext, err := primitive.Decrypt(sealed, ad)
	if err != nil {
		return nil, ErrCannotOpen
	}

	return plaintext, nil
}
