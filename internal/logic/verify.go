package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/awnumar/memguard"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/envelope"
	"github.com/idelchi/jotter/internal/prompt"
	"github.com/idelchi/jotter/internal/store"
)

// RunVerify checks that every file in cfg.Args opens with one password and
// holds well formed records. Files are opened by up to cfg.Parallel workers.
//
//nolint:cyclop // parallel pipeline with printer goroutine
func RunVerify(cfg *config.Config, env Env) error {
	password, err := prompt.Once(env.Passwords)
	if err != nil {
		return err
	}

	if err := envelope.CheckPassword(password); err != nil {
		return err
	}

	type result struct {
		path    string
		entries int
		err     error
	}

	start := time.Now()

	results := make(chan result, len(cfg.Args))

	group := errgroup.Group{}
	group.SetLimit(cfg.Parallel)

	printed := make(chan struct{})

	var verified, errored int

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				fmt.Fprintf(env.Stderr, "Error verifying %q: %v\n", res.path, res.err)

				continue
			}

			verified++

			if !cfg.Quiet {
				fmt.Fprintf(env.Stdout, "Verified %q (%d entries)\n", res.path, res.entries)
			}
		}
	}()

	for _, path := range cfg.Args {
		group.Go(func() error {
			entries, err := verifyFile(path, password)

			results <- result{path: path, entries: entries, err: err}

			return err
		})
	}

	err = group.Wait()

	close(results)

	<-printed

	if !cfg.Quiet {
		fmt.Fprintf(env.Stderr, "\nStats\n")
		fmt.Fprintf(env.Stderr, "  Verified:  %d\n", verified)
		fmt.Fprintf(env.Stderr, "  Errors:    %d\n", errored)
		fmt.Fprintf(env.Stderr, "  Duration:  %s\n", time.Since(start).Round(time.Millisecond))
	}

	if err != nil {
		return fmt.Errorf("%d of %d file(s) failed verification: %w", errored, len(cfg.Args), err)
	}

	return nil
}

// verifyFile opens path and returns the number of records it holds.
func verifyFile(path, password string) (int, error) {
	plaintext, err := envelope.OpenFromFile(path, password)
	if err != nil {
		return 0, err
	}
	defer memguard.WipeBytes(plaintext)

	entries, err := store.ParseRecords(plaintext)
	if err != nil {
		return 0, err
	}

	return len(entries), nil
}

// RunInfo prints the cleartext header of every file in cfg.Args.
// No password is needed.
func RunInfo(cfg *config.Config, env Env) error {
	var failed int

	for _, path := range cfg.Args {
		header, err := envelope.InspectFile(path)
		if err != nil {
			failed++

			fmt.Fprintf(env.Stderr, "Error inspecting %q: %v\n", path, err)

			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			failed++

			fmt.Fprintf(env.Stderr, "Error inspecting %q: %v\n", path, err)

			continue
		}

		fmt.Fprintf(env.Stdout, "%s\n", path)
		fmt.Fprintf(env.Stdout, "  Version:   %d\n", header.Version)
		fmt.Fprintf(env.Stdout, "  KDF:       %s\n", header.KDF)
		fmt.Fprintf(env.Stdout, "  Salt:      %d bytes\n", len(header.Salt))
		fmt.Fprintf(env.Stdout, "  Nonce:     %d bytes\n", len(header.Nonce))
		//nolint:gosec // file sizes are never negative
		fmt.Fprintf(env.Stdout, "  Size:      %s\n", humanize.IBytes(uint64(max(0, info.Size()))))
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be inspected", failed)
	}

	return nil
}
