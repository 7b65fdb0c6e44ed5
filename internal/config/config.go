// Package config holds the runtime configuration of jotter commands and the
// persisted settings file.
package config

import (
	"fmt"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/jotter/internal/kdf"
	"github.com/idelchi/jotter/internal/pwgen"
)

// Config is populated from flags and JOTTER_* environment variables.
type Config struct {
	// Common flags
	KDF      string `mapstructure:"kdf"      validate:"omitempty,kdf"`
	Settings string `mapstructure:"config"`
	Quiet    bool   `mapstructure:"quiet"`
	Password string `mapstructure:"password"`

	// Command-specific flags
	Show     bool   `mapstructure:"show"`
	Force    bool   `mapstructure:"force"`
	Parallel int    `mapstructure:"parallel" validate:"min=1"`
	Strategy string `mapstructure:"strategy" validate:"omitempty,pwgen"`
	SecLevel int    `mapstructure:"sec-level" validate:"min=-1"`
	Count    int    `mapstructure:"count"    validate:"min=1"`

	// Positional arguments
	File   string   `mapstructure:"-"`
	Input  string   `mapstructure:"-"`
	Output string   `mapstructure:"-"`
	Args   []string `mapstructure:"-"`

	// Defaults resolved from the settings file
	Defaults Settings `mapstructure:"-"`
}

// Display reports whether the configuration should be shown instead of acted on.
func (c Config) Display() bool {
	return c.Show
}

// Validate validates config, the unmarshalled form of c, against the struct tags.
func (c *Config) Validate(config any) error {
	validate := validator.NewValidator()

	if err := registerValidations(validate); err != nil {
		return err
	}

	if err := validate.Validator().Struct(config); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.SecLevel >= pwgen.MaxSecLevel {
		return fmt.Errorf("validating configuration: sec-level must be below %d", pwgen.MaxSecLevel)
	}

	return nil
}

// WriteKDF returns the algorithm for new writes: the --kdf flag if given,
// otherwise the settings file default.
func (c Config) WriteKDF() kdf.ID {
	return kdf.Resolve(c.KDF, c.Defaults.KDFID())
}

// GenStrategy returns the password generation strategy: the flag if given,
// otherwise the settings file default.
func (c Config) GenStrategy() pwgen.Strategy {
	if s, ok := pwgen.ParseStrategy(c.Strategy); ok {
		return s
	}

	return c.Defaults.Strategy()
}

// GenSecLevel returns the password generation level. A negative flag value
// selects the settings file default.
func (c Config) GenSecLevel() int {
	if c.SecLevel < 0 {
		return c.Defaults.SecLevel
	}

	return c.SecLevel
}

// Describe renders the effective configuration without secrets.
func (c Config) Describe() string {
	var b strings.Builder

	fmt.Fprintf(&b, "settings:  %s\n", c.Settings)
	fmt.Fprintf(&b, "kdf:       %s\n", c.WriteKDF())
	fmt.Fprintf(&b, "pwgen:     %s\n", c.GenStrategy())
	fmt.Fprintf(&b, "seclevel:  %d\n", c.GenSecLevel())

	return b.String()
}
