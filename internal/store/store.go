// Package store holds the named text entries of a jotter file.
//
// A Store knows nothing about encryption. It serializes to a JSON record
// stream and relies on the envelope package when it is loaded from or saved
// to disk. A Store is not safe for concurrent use.
package store

import (
	"iter"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/idelchi/jotter/internal/kdf"
)

// Store maps entry names to entry text and tracks unsaved changes.
type Store struct {
	entries map[string]string
	kdf     kdf.ID
	dirty   bool
}

// New creates an empty, clean store whose future writes use the given algorithm.
func New(id kdf.ID) *Store {
	return &Store{
		entries: make(map[string]string),
		kdf:     id,
	}
}

// KDF returns the algorithm used when the store is saved.
func (s *Store) KDF() kdf.ID {
	return s.kdf
}

// SetKDF changes the algorithm used for future saves.
func (s *Store) SetKDF(id kdf.ID) {
	s.kdf = id
}

// IsDirty reports whether the store changed since the last successful load or save.
func (s *Store) IsDirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag. Only persistence code calls it.
func (s *Store) MarkClean() {
	s.dirty = false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the text stored under name.
func (s *Store) Get(name string) (string, bool) {
	text, ok := s.entries[name]

	return text, ok
}

// Exists reports whether an entry called name exists.
func (s *Store) Exists(name string) bool {
	_, ok := s.Get(name)

	return ok
}

// ValidName reports whether name can be stored: non-empty and valid UTF-8.
func ValidName(name string) bool {
	return name != "" && utf8.ValidString(name)
}

// Insert creates or overwrites the entry called name.
// Entries whose name is empty or not valid UTF-8 are never stored.
func (s *Store) Insert(name, text string) {
	if !ValidName(name) {
		return
	}

	s.entries[name] = text
	s.dirty = true
}

// Remove deletes the entry called name if it exists.
// The store is marked dirty either way.
func (s *Store) Remove(name string) {
	delete(s.entries, name)
	s.dirty = true
}

// Add inserts a new entry. It returns false, leaving the store untouched,
// when name is invalid or already taken.
func (s *Store) Add(name, text string) bool {
	if !ValidName(name) || s.Exists(name) {
		return false
	}

	s.Insert(name, text)

	return true
}

// Rename moves the text of oldName to newName. It returns false, leaving the
// store untouched, when oldName does not exist or newName is invalid or taken.
func (s *Store) Rename(oldName, newName string) bool {
	text, ok := s.Get(oldName)
	if !ok {
		return false
	}

	if !ValidName(newName) || s.Exists(newName) {
		return false
	}

	s.Remove(oldName)
	s.Insert(newName, text)

	return true
}

// Names yields the entry names in ascending order. The order is computed
// when iteration starts, so every iteration reflects the current contents.
func (s *Store) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range slices.Sorted(maps.Keys(s.entries)) {
			if !yield(name) {
				return
			}
		}
	}
}
