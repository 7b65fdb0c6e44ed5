package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/awnumar/memguard"
	"github.com/tidwall/jsonc"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/fileutil"
	"github.com/idelchi/jotter/internal/prompt"
	"github.com/idelchi/jotter/internal/store"
)

// RunEncrypt reads the plaintext records in cfg.Input, which may carry
// comments and trailing commas, and seals them into cfg.File.
// An existing cfg.File is replaced only with cfg.Force.
func RunEncrypt(cfg *config.Config, env Env) error {
	if err := checkTarget(cfg.File, cfg.Force); err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Input) //nolint:gosec // path is user supplied
	if err != nil {
		return fmt.Errorf("reading records %q: %w", cfg.Input, err)
	}
	defer memguard.WipeBytes(data)

	s := store.New(cfg.WriteKDF())
	if err := s.UnmarshalRecords(jsonc.ToJSONInPlace(data)); err != nil {
		return fmt.Errorf("parsing records %q: %w", cfg.Input, err)
	}

	password, err := prompt.Verified(env.Passwords)
	if err != nil {
		return err
	}

	sess := &session{store: s, password: password, start: time.Now()}

	return sess.commit(cfg, env, fmt.Sprintf("Encrypted %q -> %q", cfg.Input, cfg.File))
}

// RunDecrypt opens cfg.File and writes its records as plaintext JSON to
// cfg.Output, or to stdout when no output is given.
func RunDecrypt(cfg *config.Config, env Env) error {
	sess, err := open(cfg, env)
	if err != nil {
		return err
	}

	if cfg.Output == "" || cfg.Output == "-" {
		if _, err := sess.store.WriteTo(env.Stdout); err != nil {
			return err
		}

		fmt.Fprintln(env.Stdout)

		return nil
	}

	if err := checkTarget(cfg.Output, cfg.Force); err != nil {
		return err
	}

	data, err := sess.store.MarshalRecords()
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(data)

	if _, err := fileutil.WriteAtomic(cfg.Output, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing records %q: %w", cfg.Output, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(env.Stdout, "Decrypted %q -> %q\n", cfg.File, cfg.Output)
	}

	return nil
}

// checkTarget refuses to replace an existing file unless forced.
func checkTarget(path string, force bool) error {
	if force {
		return nil
	}

	_, err := os.Stat(path)

	switch {
	case err == nil:
		return fmt.Errorf("file %q: %w (use --force to replace it)", path, ErrExists)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("checking %q: %w", path, err)
	}
}
