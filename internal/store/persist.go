package store

import (
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/idelchi/jotter/internal/envelope"
	"github.com/idelchi/jotter/internal/kdf"
)

// Load replaces the store's contents with the entries sealed in the file at path.
// The algorithm recorded in the file is used for reading; the store's own
// binding is left unchanged. On success the store is clean; on failure it is untouched.
func (s *Store) Load(path, password string) error {
	plaintext, err := envelope.OpenFromFile(path, password)
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(plaintext)

	if err := s.UnmarshalRecords(plaintext); err != nil {
		return fmt.Errorf("loading %q: %w", path, err)
	}

	s.MarkClean()

	return nil
}

// Save seals the store into path with the store's algorithm.
// It returns the size of the written file.
func (s *Store) Save(path, password string) (int64, error) {
	return s.SaveAs(path, password, s.kdf)
}

// SaveAs seals the store into path with the given algorithm, leaving the
// store's binding unchanged. The dirty flag is cleared only on success.
func (s *Store) SaveAs(path, password string, id kdf.ID) (int64, error) {
	plaintext, err := s.MarshalRecords()
	if err != nil {
		return 0, err
	}
	defer memguard.WipeBytes(plaintext)

	size, err := envelope.SealToFile(path, password, id, plaintext)
	if err != nil {
		return 0, err
	}

	s.MarkClean()

	return size, nil
}
