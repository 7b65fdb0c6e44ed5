package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the enc subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] records.json store",
		Aliases: []string{"enc"},
		Short:   "Seal a plaintext JSON record file into a store",
		Args:    cobra.ExactArgs(2), //nolint:mnd
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Input, cfg.File = args[0], args[1]
		}),
		RunE: run(cfg, logic.RunEncrypt),
	}

	cmd.Flags().BoolP("force", "f", false, "Replace an existing store")

	return cmd
}

// NewDecryptCommand creates a new cobra command for the dec subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] store [records.json]",
		Aliases: []string{"dec"},
		Short:   "Write the records of a store as plaintext JSON",
		Long:    "Write the records of a store as plaintext JSON, to stdout when no output file is given.",
		Args:    cobra.RangeArgs(1, 2), //nolint:mnd
		PreRunE: preRun(cfg, func(args []string) {
			cfg.File = args[0]

			if len(args) > 1 {
				cfg.Output = args[1]
			}
		}),
		RunE: run(cfg, logic.RunDecrypt),
	}

	cmd.Flags().BoolP("force", "f", false, "Replace an existing output file")

	return cmd
}
