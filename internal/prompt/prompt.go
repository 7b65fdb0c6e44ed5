// Package prompt supplies passwords to jotter commands.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/howeyc/gopass"
)

// ErrMismatch is returned when a password and its verification differ.
var ErrMismatch = errors.New("passwords differ")

// Source supplies a password for the given prompt.
type Source interface {
	Password(prompt string) (string, error)
}

// Terminal reads passwords from a terminal without echo.
type Terminal struct {
	In  gopass.FdReader
	Out io.Writer
}

// NewTerminal returns a Terminal reading from stdin and prompting on stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// Password prompts for and reads a password.
func (t *Terminal) Password(prompt string) (string, error) {
	raw, err := gopass.GetPasswdPrompt(prompt, false, t.In, t.Out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	defer memguard.WipeBytes(raw)

	return string(raw), nil
}

// Static always returns the same password. It serves scripted use through
// the environment and tests.
type Static string

// Password returns the static password.
func (s Static) Password(string) (string, error) {
	return string(s), nil
}

// Sequence returns its passwords in order, one per call.
type Sequence struct {
	Passwords []string
	next      int
}

// Password returns the next password of the sequence.
func (s *Sequence) Password(string) (string, error) {
	if s.next >= len(s.Passwords) {
		return "", errors.New("no more passwords")
	}

	pw := s.Passwords[s.next]
	s.next++

	return pw, nil
}

// Verified asks src for a password twice and fails with ErrMismatch if the two entries differ.
func Verified(src Source) (string, error) {
	first, err := src.Password("Password: ")
	if err != nil {
		return "", err
	}

	second, err := src.Password("Verification: ")
	if err != nil {
		return "", err
	}

	if first != second {
		return "", ErrMismatch
	}

	return first, nil
}

// Once asks src for a password a single time.
func Once(src Source) (string, error) {
	return src.Password("Password: ")
}
