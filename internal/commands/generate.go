package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/logic"
	"github.com/idelchi/jotter/internal/pwgen"
)

// NewGenerateCommand creates a new cobra command for the gen subcommand.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate random passwords",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, noArgs),
		RunE:    run(cfg, logic.RunGenerate),
	}

	pwgenFlags(cmd)
	cmd.Flags().IntP("count", "n", 1, "Number of passwords to generate")

	return cmd
}

// NewConfigCommand creates a new cobra command for the cfg subcommand.
func NewConfigCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config [flags]",
		Aliases: []string{"cfg"},
		Short:   "Write the default settings",
		Long: `Write the defaults for --kdf, --strategy and --sec-level to the settings file.
Values not given keep their current setting.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, noArgs),
		RunE:    run(cfg, logic.RunConfig),
	}

	pwgenFlags(cmd)
	cmd.Flags().BoolP("show", "s", false, "Show the configuration and exit")

	return cmd
}

func pwgenFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("strategy", "t", "", "Password alphabet "+quoted(pwgen.Strategies()))
	cmd.Flags().
		IntP("sec-level", "l", -1, fmt.Sprintf("Security level in [0, %d), 24*(level+1) bits of entropy", pwgen.MaxSecLevel))
}

func quoted(names []string) string {
	return "(" + strings.Join(names, ", ") + ")"
}
