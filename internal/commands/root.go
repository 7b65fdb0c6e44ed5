package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/kdf"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "jotter [flags] command [flags]"
	root.Short = "Password protected note store"
	root.Long = `A store of named text entries sealed in a single password protected file.
Keys are derived with argon2, scrypt or pbkdf2 and entries are encrypted with AES-256-GCM.
The password is read from the terminal or from the JOTTER_PASSWORD environment variable.`

	withDefaults(root)

	root.PersistentFlags().String("kdf", "", "Key derivation function for writes "+quoted(kdf.Names()))
	root.PersistentFlags().StringP("config", "c", "", "Path to the settings file, defaults to ~/.jotter.toml")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewListCommand(cfg),
		NewShowCommand(cfg),
		NewPutCommand(cfg),
		NewRemoveCommand(cfg),
		NewRenameCommand(cfg),
		NewVerifyCommand(cfg),
		NewInfoCommand(cfg),
		NewGenerateCommand(cfg),
		NewConfigCommand(cfg),
	)

	return root
}
