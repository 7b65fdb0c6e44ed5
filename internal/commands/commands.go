package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/logic"
	"github.com/idelchi/jotter/internal/prompt"
)

// PasswordEnv names the environment variable that replaces the password prompt.
const PasswordEnv = "JOTTER_PASSWORD"

// withDefaults extends the root's flag and environment binding with the
// defaults of flags that only some commands define.
func withDefaults(root *cobra.Command) {
	bindE, bind := root.PersistentPreRunE, root.PersistentPreRun

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case bindE != nil:
			if err := bindE(cmd, args); err != nil {
				return err
			}
		case bind != nil:
			bind(cmd, args)
		}

		viper.SetDefault("parallel", runtime.NumCPU())
		viper.SetDefault("sec-level", -1)
		viper.SetDefault("count", 1)

		if err := viper.BindEnv("password", PasswordEnv); err != nil {
			return fmt.Errorf("binding %s: %w", PasswordEnv, err)
		}

		return nil
	}
}

// preRun returns a PreRunE handler that stores the positional args, validates
// the configuration and resolves the settings file.
func preRun(cfg *config.Config, positional func([]string)) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if err := cobraext.Validate(cfg, cfg); err != nil {
			return err
		}

		positional(args)

		return resolveSettings(cfg)
	}
}

// resolveSettings loads the settings file into cfg.Defaults. A file that cannot
// be read leaves the built-in defaults in place and is only reported.
func resolveSettings(cfg *config.Config) error {
	if cfg.Settings == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}

		cfg.Settings = path
	}

	settings, err := config.LoadSettings(cfg.Settings)
	if err != nil && !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}

	cfg.Defaults = settings

	return nil
}

// env returns the environment for an operation. A password from the
// environment replaces the terminal prompt.
func env(cfg *config.Config) logic.Env {
	e := logic.DefaultEnv()

	if cfg.Password != "" {
		e.Passwords = prompt.Static(cfg.Password)
	}

	return e
}

// noArgs ignores positional arguments.
func noArgs([]string) {}

// storeArgs takes the store file from the first positional argument and
// passes the rest on as cfg.Args.
func storeArgs(cfg *config.Config) func([]string) {
	return func(args []string) {
		cfg.File, cfg.Args = args[0], args[1:]
	}
}

// fileArgs passes every positional argument on as cfg.Args.
func fileArgs(cfg *config.Config) func([]string) {
	return func(args []string) {
		cfg.Args = args
	}
}

// run returns a RunE handler calling an operation with the environment of cfg.
func run(cfg *config.Config, operation func(*config.Config, logic.Env) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return operation(cfg, env(cfg))
	}
}
