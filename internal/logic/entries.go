package logic

import (
	"errors"
	"fmt"
	"slices"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/store"
)

var errInvalidName = errors.New("entry names must be non-empty UTF-8")

// RunList prints the entry names of cfg.File in ascending order.
func RunList(cfg *config.Config, env Env) error {
	sess, err := open(cfg, env)
	if err != nil {
		return err
	}

	for name := range sess.store.Names() {
		fmt.Fprintln(env.Stdout, name)
	}

	return nil
}

// RunShow prints the text of the entry named by the first argument.
func RunShow(cfg *config.Config, env Env) error {
	name := cfg.Args[0]

	sess, err := open(cfg, env)
	if err != nil {
		return err
	}

	text, ok := sess.store.Get(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	fmt.Fprintln(env.Stdout, text)

	return nil
}

// RunPut stores the text given as second argument under the name given as
// first. An existing entry is replaced only with cfg.Force.
func RunPut(cfg *config.Config, env Env) error {
	name, text := cfg.Args[0], cfg.Args[1]
	if !store.ValidName(name) {
		return errInvalidName
	}

	sess, err := open(cfg, env)
	if err != nil {
		return err
	}

	switch {
	case cfg.Force:
		sess.store.Insert(name, text)
	case !sess.store.Add(name, text):
		return fmt.Errorf("entry %q: %w", name, ErrExists)
	}

	return sess.commit(cfg, env, fmt.Sprintf("Stored %q", name))
}

// RunRemove deletes every named entry. A name given twice is removed once.
// Nothing is saved if any name is missing.
func RunRemove(cfg *config.Config, env Env) error {
	names := slices.Compact(slices.Sorted(slices.Values(cfg.Args)))

	sess, err := open(cfg, env)
	if err != nil {
		return err
	}

	for _, name := range names {
		if !sess.store.Exists(name) {
			return fmt.Errorf("%q: %w", name, ErrNotFound)
		}

		sess.store.Remove(name)
	}

	return sess.commit(cfg, env, fmt.Sprintf("Removed %d entries", len(names)))
}

// RunRename moves the entry named by the first argument to the second.
func RunRename(cfg *config.Config, env Env) error {
	from, to := cfg.Args[0], cfg.Args[1]
	if !store.ValidName(to) {
		return errInvalidName
	}

	sess, err := open(cfg, env)
	if err != nil {
		return err
	}

	if !sess.store.Exists(from) {
		return fmt.Errorf("%q: %w", from, ErrNotFound)
	}

	if !sess.store.Rename(from, to) {
		return fmt.Errorf("entry %q: %w", to, ErrExists)
	}

	return sess.commit(cfg, env, fmt.Sprintf("Renamed %q -> %q", from, to))
}
