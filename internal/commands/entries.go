package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/logic"
)

// NewListCommand creates a new cobra command for the list subcommand.
func NewListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "list [flags] store",
		Aliases: []string{"ls"},
		Short:   "List entry names",
		Args:    cobra.ExactArgs(1),
		PreRunE: preRun(cfg, storeArgs(cfg)),
		RunE:    run(cfg, logic.RunList),
	}
}

// NewShowCommand creates a new cobra command for the show subcommand.
func NewShowCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "show [flags] store name",
		Short:   "Print the text of an entry",
		Args:    cobra.ExactArgs(2), //nolint:mnd
		PreRunE: preRun(cfg, storeArgs(cfg)),
		RunE:    run(cfg, logic.RunShow),
	}
}

// NewPutCommand creates a new cobra command for the put subcommand.
func NewPutCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "put [flags] store name text",
		Short:   "Add an entry",
		Args:    cobra.ExactArgs(3), //nolint:mnd
		PreRunE: preRun(cfg, storeArgs(cfg)),
		RunE:    run(cfg, logic.RunPut),
	}

	cmd.Flags().BoolP("force", "f", false, "Replace the entry if it exists")

	return cmd
}

// NewRemoveCommand creates a new cobra command for the rm subcommand.
func NewRemoveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [flags] store name...",
		Aliases: []string{"rm"},
		Short:   "Remove entries",
		Args:    cobra.MinimumNArgs(2), //nolint:mnd
		PreRunE: preRun(cfg, storeArgs(cfg)),
		RunE:    run(cfg, logic.RunRemove),
	}
}

// NewRenameCommand creates a new cobra command for the mv subcommand.
func NewRenameCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "rename [flags] store old new",
		Aliases: []string{"mv"},
		Short:   "Rename an entry",
		Args:    cobra.ExactArgs(3), //nolint:mnd
		PreRunE: preRun(cfg, storeArgs(cfg)),
		RunE:    run(cfg, logic.RunRename),
	}
}
