package envelope

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/jotter/internal/fileutil"
	"github.com/idelchi/jotter/internal/kdf"
)

// SealToFile seals plaintext and atomically replaces path with the envelope.
// It returns the size of the written file.
func SealToFile(path, password string, id kdf.ID, plaintext []byte) (int64, error) {
	data, err := Seal(password, id, plaintext)
	if err != nil {
		return 0, err
	}

	size, err := fileutil.WriteAtomic(path, data, fileutil.OwnerReadWrite)
	if err != nil {
		return 0, fmt.Errorf("writing %q: %w", path, err)
	}

	return size, nil
}

// OpenFromFile reads path and opens the envelope it contains.
func OpenFromFile(path, password string) ([]byte, error) {
	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	return Open(password, data)
}

// InspectFile reads the cleartext header of the envelope stored at path.
func InspectFile(path string) (Header, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Header{}, fmt.Errorf("reading %q: %w", path, err)
	}

	return Inspect(data)
}
