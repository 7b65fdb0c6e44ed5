package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrFormat is returned when a record stream cannot be parsed.
var ErrFormat = errors.New("malformed entry records")

// Record is the serialized form of one entry.
type Record struct {
	Key  string `json:"Key"`
	Text string `json:"Text"`
}

// Records returns the entries as records sorted by name.
func (s *Store) Records() []Record {
	records := make([]Record, 0, len(s.entries))

	for name := range s.Names() {
		records = append(records, Record{Key: name, Text: s.entries[name]})
	}

	return records
}

// MarshalRecords encodes the entries as an indented JSON array of records.
// Text that is not valid UTF-8 cannot be encoded without loss and is an error.
func (s *Store) MarshalRecords() ([]byte, error) {
	for name := range s.Names() {
		if !ValidName(name) || !utf8.ValidString(s.entries[name]) {
			return nil, fmt.Errorf("%w: entry %q is not valid UTF-8", ErrFormat, name)
		}
	}

	data, err := json.MarshalIndent(s.Records(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}

	return data, nil
}

// WriteTo writes the entries as a JSON record array to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	data, err := s.MarshalRecords()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("writing records: %w", err)
	}

	return int64(n), nil
}

// ParseRecords decodes a JSON record array into a name to text map.
// Field names must be spelled exactly "Key" and "Text".
// A later record replaces an earlier one with the same name.
func ParseRecords(data []byte) (map[string]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	var objects []map[string]json.RawMessage
	if err := decoder.Decode(&objects); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after record array", ErrFormat)
	}

	if objects == nil {
		return nil, fmt.Errorf("%w: expected a record array", ErrFormat)
	}

	entries := make(map[string]string, len(objects))

	for i, object := range objects {
		record, err := parseRecord(object)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrFormat, i, err)
		}

		entries[record.Key] = record.Text
	}

	return entries, nil
}

func parseRecord(object map[string]json.RawMessage) (Record, error) {
	var record Record

	if object == nil {
		return record, errors.New("not an object")
	}

	for field, raw := range object {
		var target *string

		switch field {
		case "Key":
			target = &record.Key
		case "Text":
			target = &record.Text
		default:
			return record, fmt.Errorf("unknown field %q", field)
		}

		if err := json.Unmarshal(raw, target); err != nil {
			return record, fmt.Errorf("field %q: %w", field, err)
		}
	}

	if record.Key == "" {
		return record, errors.New("empty key")
	}

	return record, nil
}

// UnmarshalRecords replaces the store's contents with the records in data
// and marks the store dirty. On error the store is left exactly as it was.
func (s *Store) UnmarshalRecords(data []byte) error {
	entries, err := ParseRecords(data)
	if err != nil {
		return err
	}

	s.entries = entries
	s.dirty = true

	return nil
}

// ReadFrom replaces the store's contents with the JSON record array read from r.
// On error the store is left exactly as it was.
func (s *Store) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), fmt.Errorf("reading records: %w", err)
	}

	if err := s.UnmarshalRecords(data); err != nil {
		return int64(len(data)), err
	}

	return int64(len(data)), nil
}
