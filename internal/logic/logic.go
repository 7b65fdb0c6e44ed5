// Package logic implements the jotter operations behind the command line.
package logic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/prompt"
	"github.com/idelchi/jotter/internal/store"
)

var (
	// ErrNotFound is returned when a named entry does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrExists is returned when a name or file is already taken.
	ErrExists = errors.New("already exists")
)

// Env carries the password source and the output streams of an operation.
type Env struct {
	Passwords prompt.Source
	Stdout    io.Writer
	Stderr    io.Writer
}

// DefaultEnv prompts on the terminal and writes to the process streams.
func DefaultEnv() Env {
	return Env{
		Passwords: prompt.NewTerminal(),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// session is an opened store together with the password that opened it.
type session struct {
	store    *store.Store
	password string
	start    time.Time
}

// open asks for the password and loads cfg.File. Saves go out with the
// algorithm selected by flag or settings, whatever the file used before.
func open(cfg *config.Config, env Env) (*session, error) {
	password, err := prompt.Once(env.Passwords)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	s := store.New(cfg.WriteKDF())
	if err := s.Load(cfg.File, password); err != nil {
		return nil, fmt.Errorf("opening %q: %w", cfg.File, err)
	}

	return &session{store: s, password: password, start: start}, nil
}

// commit saves the store if it has unsaved changes and reports the result
// only once the file is safely on disk.
func (s *session) commit(cfg *config.Config, env Env, action string) error {
	if !s.store.IsDirty() {
		if !cfg.Quiet {
			fmt.Fprintf(env.Stderr, "No changes to %q\n", cfg.File)
		}

		return nil
	}

	size, err := s.store.Save(cfg.File, s.password)
	if err != nil {
		return fmt.Errorf("saving %q: %w", cfg.File, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(env.Stdout, "%s\n", action)
		printStats(env.Stderr, cfg.File, s.store, size, time.Since(s.start))
	}

	return nil
}

func printStats(w io.Writer, path string, s *store.Store, size int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  File:      %s\n", path)
	fmt.Fprintf(w, "  Entries:   %d\n", s.Len())
	fmt.Fprintf(w, "  KDF:       %s\n", s.KDF())
	//nolint:gosec // size is a file size and never negative
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, size))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
