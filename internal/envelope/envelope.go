package envelope

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/idelchi/jotter/internal/kdf"
)

const (
	envelopeMagic   = "JOTS"
	envelopeVersion = byte(1)

	// SaltSize is the length of the per-file key-derivation salt.
	SaltSize = 32
	// NonceSize is the length of the AES-GCM nonce.
	NonceSize = 12
)

// errMalformed marks a container that cannot be parsed. It never leaves the package.
var errMalformed = errors.New("malformed envelope")

// Header is the cleartext part of an envelope.
type Header struct {
	Version byte
	KDF     kdf.ID
	Salt    []byte
	Nonce   []byte
}

// associatedData encodes everything that precedes the nonce: magic, version,
// kdf name and salt, each variable field prefixed with a one-byte length.
func associatedData(id kdf.ID, salt []byte) []byte {
	name := id.String()

	ad := make([]byte, 0, len(envelopeMagic)+3+len(name)+len(salt))
	ad = append(ad, envelopeMagic...)
	ad = append(ad, envelopeVersion)
	ad = append(ad, byte(len(name)))
	ad = append(ad, name...)
	ad = append(ad, byte(len(salt)))
	ad = append(ad, salt...)

	return ad
}

// marshalEnvelope assembles the container from its associated data, nonce and ciphertext.
func marshalEnvelope(ad, nonce, ciphertext []byte) []byte {
	out := make([]byte, 0, len(ad)+1+len(nonce)+len(ciphertext))
	out = append(out, ad...)
	out = append(out, byte(len(nonce)))
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	return out
}

// envelopeReader walks a container field by field.
type envelopeReader struct {
	data []byte
	pos  int
}

func (r *envelopeReader) next(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: truncated at offset %d", errMalformed, r.pos)
	}

	field := r.data[r.pos : r.pos+n]
	r.pos += n

	return field, nil
}

func (r *envelopeReader) field() ([]byte, error) {
	size, err := r.next(1)
	if err != nil {
		return nil, err
	}

	return r.next(int(size[0]))
}

// parseEnvelope splits a container into its header, the associated data
// bytes and the ciphertext with tag.
func parseEnvelope(data []byte) (Header, []byte, []byte, error) {
	r := &envelopeReader{data: data}

	magic, err := r.next(len(envelopeMagic))
	if err != nil {
		return Header{}, nil, nil, err
	}

	if !bytes.Equal(magic, []byte(envelopeMagic)) {
		return Header{}, nil, nil, fmt.Errorf("%w: invalid magic", errMalformed)
	}

	version, err := r.next(1)
	if err != nil {
		return Header{}, nil, nil, err
	}

	if version[0] != envelopeVersion {
		return Header{}, nil, nil, fmt.Errorf("%w: unsupported version %d", errMalformed, version[0])
	}

	name, err := r.field()
	if err != nil {
		return Header{}, nil, nil, err
	}

	id, ok := kdf.Parse(string(name))
	if !ok {
		return Header{}, nil, nil, fmt.Errorf("%w: unknown key derivation function %q", errMalformed, name)
	}

	salt, err := r.field()
	if err != nil {
		return Header{}, nil, nil, err
	}

	if len(salt) != SaltSize {
		return Header{}, nil, nil, fmt.Errorf("%w: salt size %d", errMalformed, len(salt))
	}

	ad := data[:r.pos]

	nonce, err := r.field()
	if err != nil {
		return Header{}, nil, nil, err
	}

	if len(nonce) != NonceSize {
		return Header{}, nil, nil, fmt.Errorf("%w: nonce size %d", errMalformed, len(nonce))
	}

	ciphertext := data[r.pos:]
	if len(ciphertext) < tagSize {
		return Header{}, nil, nil, fmt.Errorf("%w: ciphertext too short", errMalformed)
	}

	header := Header{
		Version: version[0],
		KDF:     id,
		Salt:    salt,
		Nonce:   nonce,
	}

	return header, ad, ciphertext, nil
}

// Inspect parses the cleartext header of an envelope without decrypting it.
func Inspect(data []byte) (Header, error) {
	header, _, _, err := parseEnvelope(data)
	if err != nil {
		return Header{}, ErrCannotOpen
	}

	return header, nil
}
