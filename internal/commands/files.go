package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/logic"
)

// NewVerifyCommand creates a new cobra command for the verify subcommand.
func NewVerifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify [flags] store...",
		Short:   "Check that stores open with the given password",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, fileArgs(cfg)),
		RunE:    run(cfg, logic.RunVerify),
	}

	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")

	return cmd
}

// NewInfoCommand creates a new cobra command for the info subcommand.
func NewInfoCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "info [flags] store...",
		Short:   "Print the unencrypted header of stores",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, fileArgs(cfg)),
		RunE:    run(cfg, logic.RunInfo),
	}
}
