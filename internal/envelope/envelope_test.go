package envelope_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/jotter/internal/envelope"
	"github.com/idelchi/jotter/internal/kdf"
)

const password = "Tr0ub4dor&3"

func TestSealOpenRoundTrip(t *testing.T) {
	t.Parallel()

	plaintext := []byte(`[{"Key":"bank","Text":"1234"}]`)

	for _, id := range kdf.Known() {
		t.Run(id.String(), func(t *testing.T) {
			t.Parallel()

			sealed, err := envelope.Seal(password, id, plaintext)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}

			header, err := envelope.Inspect(sealed)
			if err != nil {
				t.Fatalf("Inspect() error = %v", err)
			}

			if header.KDF != id {
				t.Errorf("Inspect() KDF = %v, want %v", header.KDF, id)
			}

			got, err := envelope.Open(password, sealed)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			if !bytes.Equal(got, plaintext) {
				t.Errorf("Open() = %q, want %q", got, plaintext)
			}
		})
	}
}

func TestSealEmptyPlaintext(t *testing.T) {
	t.Parallel()

	sealed, err := envelope.Seal(password, kdf.Scrypt, nil)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	got, err := envelope.Open(password, sealed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if len(got) != 0 {
		t.Errorf("Open() = %q, want empty", got)
	}
}

func TestSealFreshSaltAndNonce(t *testing.T) {
	t.Parallel()

	plaintext := []byte("same input")

	first, err := envelope.Seal(password, kdf.Scrypt, plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	second, err := envelope.Seal(password, kdf.Scrypt, plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	h1, err := envelope.Inspect(first)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	h2, err := envelope.Inspect(second)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if bytes.Equal(h1.Salt, h2.Salt) {
		t.Error("two seals reused the same salt")
	}

	if bytes.Equal(h1.Nonce, h2.Nonce) {
		t.Error("two seals reused the same nonce")
	}

	if bytes.Equal(first, second) {
		t.Error("two seals produced identical envelopes")
	}
}

// fieldOffsets returns one byte position inside every field of a sealed envelope.
func fieldOffsets(t *testing.T, sealed []byte) map[string]int {
	t.Helper()

	kdfLen := int(sealed[5])
	saltLenPos := 6 + kdfLen
	saltLen := int(sealed[saltLenPos])
	nonceLenPos := saltLenPos + 1 + saltLen
	nonceLen := int(sealed[nonceLenPos])
	ciphertextPos := nonceLenPos + 1 + nonceLen

	if ciphertextPos >= len(sealed) {
		t.Fatalf("unexpected envelope layout, ciphertext offset %d of %d", ciphertextPos, len(sealed))
	}

	return map[string]int{
		"magic":        0,
		"version":      4,
		"kdf length":   5,
		"kdf id":       6,
		"salt length":  saltLenPos,
		"salt":         saltLenPos + 1,
		"salt end":     saltLenPos + saltLen,
		"nonce length": nonceLenPos,
		"nonce":        nonceLenPos + 1,
		"ciphertext":   ciphertextPos,
		"tag":          len(sealed) - 1,
	}
}

func TestOpenDetectsTampering(t *testing.T) {
	t.Parallel()

	sealed, err := envelope.Seal(password, kdf.Argon2, []byte(`[{"Key":"email","Text":"a@b.com"}]`))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	for field, pos := range fieldOffsets(t, sealed) {
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			tampered := append([]byte(nil), sealed...)
			tampered[pos] ^= 0x01

			got, err := envelope.Open(password, tampered)
			if !errors.Is(err, envelope.ErrCannotOpen) {
				t.Fatalf("Open() error = %v, want %v", err, envelope.ErrCannotOpen)
			}

			if got != nil {
				t.Errorf("Open() returned plaintext %q on failure", got)
			}
		})
	}
}

func TestOpenTruncated(t *testing.T) {
	t.Parallel()

	sealed, err := envelope.Seal(password, kdf.Scrypt, []byte("hello"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	for _, size := range []int{0, 3, 10, len(sealed) / 2, len(sealed) - 1} {
		if _, err := envelope.Open(password, sealed[:size]); !errors.Is(err, envelope.ErrCannotOpen) {
			t.Errorf("Open(truncated to %d) error = %v, want %v", size, err, envelope.ErrCannotOpen)
		}
	}
}

func TestOpenWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	sealed, err := envelope.Seal(password, kdf.PBKDF2, []byte("secret"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	_, wrongErr := envelope.Open("tr0ub4dor&3", sealed)

	corrupted := append([]byte(nil), sealed...)
	corrupted[len(corrupted)-5] ^= 0xff

	_, corruptErr := envelope.Open(password, corrupted)

	_, garbageErr := envelope.Open(password, []byte("definitely not an envelope"))

	for name, err := range map[string]error{
		"wrong password": wrongErr,
		"corrupted":      corruptErr,
		"garbage":        garbageErr,
	} {
		if !errors.Is(err, envelope.ErrCannotOpen) {
			t.Errorf("%s: error = %v, want %v", name, err, envelope.ErrCannotOpen)
		}

		if err.Error() != envelope.ErrCannotOpen.Error() {
			t.Errorf("%s: message %q leaks detail", name, err.Error())
		}
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid ascii", "Tr0ub4dor&3", nil},
		{"valid unicode", "pässwört ✓", nil},
		{"empty", "", envelope.ErrEmptyPassword},
		{"invalid utf8", "abc\xff", envelope.ErrInvalidPassword},
		{"control character", "abc\x00def", envelope.ErrInvalidPassword},
		{"newline", "abc\n", envelope.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := envelope.CheckPassword(tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckPassword(%q) = %v, want %v", tt.password, err, tt.want)
			}
		})
	}
}

func TestOpenRejectsUnusablePasswordFirst(t *testing.T) {
	t.Parallel()

	if _, err := envelope.Open("", []byte("junk")); !errors.Is(err, envelope.ErrEmptyPassword) {
		t.Errorf("Open(\"\") error = %v, want %v", err, envelope.ErrEmptyPassword)
	}

	if _, err := envelope.Seal("", kdf.Default, []byte("x")); !errors.Is(err, envelope.ErrEmptyPassword) {
		t.Errorf("Seal(\"\") error = %v, want %v", err, envelope.ErrEmptyPassword)
	}
}

func TestSealRejectsUnknownKDF(t *testing.T) {
	t.Parallel()

	if _, err := envelope.Seal(password, kdf.ID(42), []byte("x")); err == nil {
		t.Error("Seal() with unknown KDF should fail")
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	t.Parallel()

	salt := bytes.Repeat([]byte{0xaa}, envelope.SaltSize)

	k1, err := envelope.DeriveKey(password, kdf.Scrypt, salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer k1.Destroy()

	k2, err := envelope.DeriveKey(password, kdf.Scrypt, salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	if !bytes.Equal(k1.Bytes(), k2.Bytes()) {
		t.Error("DeriveKey() is not deterministic")
	}

	k2.Destroy()

	if k2.Bytes() != nil {
		t.Error("Destroy() should release the key bytes")
	}

	otherSalt := bytes.Repeat([]byte{0xab}, envelope.SaltSize)

	k3, err := envelope.DeriveKey(password, kdf.Scrypt, otherSalt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer k3.Destroy()

	if bytes.Equal(k1.Bytes(), k3.Bytes()) {
		t.Error("different salts produced the same key")
	}
}

func TestSealToFileAndOpenFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.jot")
	plaintext := []byte("file contents")

	size, err := envelope.SealToFile(path, password, kdf.Scrypt, plaintext)
	if err != nil {
		t.Fatalf("SealToFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	if info.Size() != size {
		t.Errorf("SealToFile() size = %d, file has %d", size, info.Size())
	}

	got, err := envelope.OpenFromFile(path, password)
	if err != nil {
		t.Fatalf("OpenFromFile() error = %v", err)
	}

	if !bytes.Equal(got, plaintext) {
		t.Errorf("OpenFromFile() = %q, want %q", got, plaintext)
	}

	header, err := envelope.InspectFile(path)
	if err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}

	if header.KDF != kdf.Scrypt {
		t.Errorf("InspectFile() KDF = %v, want %v", header.KDF, kdf.Scrypt)
	}
}

func TestOpenFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := envelope.OpenFromFile(filepath.Join(t.TempDir(), "absent.jot"), password)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenFromFile() error = %v, want fs.ErrNotExist", err)
	}

	if errors.Is(err, envelope.ErrCannotOpen) {
		t.Error("I/O failure must not be reported as an authentication failure")
	}
}

func TestSealToFileFailureKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.jot")

	if _, err := envelope.SealToFile(path, password, kdf.Scrypt, []byte("v1")); err != nil {
		t.Fatalf("SealToFile() error = %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if _, err := envelope.SealToFile(path, "", kdf.Scrypt, []byte("v2")); err == nil {
		t.Fatal("SealToFile() with empty password should fail")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !bytes.Equal(before, after) {
		t.Error("failed seal modified the existing file")
	}
}
