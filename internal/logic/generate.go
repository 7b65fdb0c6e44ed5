package logic

import (
	"fmt"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/pwgen"
)

// RunGenerate prints cfg.Count random passwords.
func RunGenerate(cfg *config.Config, env Env) error {
	strategy, level := cfg.GenStrategy(), cfg.GenSecLevel()

	for range cfg.Count {
		password, err := pwgen.Generate(strategy, level)
		if err != nil {
			return fmt.Errorf("generating password: %w", err)
		}

		fmt.Fprintln(env.Stdout, password)
	}

	if !cfg.Quiet {
		fmt.Fprintf(env.Stderr, "%s, level %d: %d bits of entropy\n", strategy, level, pwgen.Bits(level))
	}

	return nil
}

// RunConfig merges the given flags into the settings and writes them to
// cfg.Settings. With cfg.Show it only prints the effective configuration.
func RunConfig(cfg *config.Config, env Env) error {
	if cfg.Show {
		fmt.Fprint(env.Stdout, cfg.Describe())

		return nil
	}

	settings := config.Settings{
		KDF:      cfg.WriteKDF().String(),
		SecLevel: cfg.GenSecLevel(),
		PwGen:    cfg.GenStrategy().String(),
	}

	if err := config.SaveSettings(cfg.Settings, settings); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(env.Stdout, "Wrote %q\n", cfg.Settings)

		written := config.Config{Settings: cfg.Settings, SecLevel: -1, Defaults: settings}
		fmt.Fprint(env.Stderr, written.Describe())
	}

	return nil
}
