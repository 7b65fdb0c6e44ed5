package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/idelchi/jotter/internal/fileutil"
	"github.com/idelchi/jotter/internal/kdf"
	"github.com/idelchi/jotter/internal/pwgen"
)

// SettingsFile is the name of the settings file in the user's home directory.
const SettingsFile = ".jotter.toml"

// Settings are the persisted user defaults.
type Settings struct {
	KDF      string `toml:"pbkdf"`
	SecLevel int    `toml:"seclevel"`
	PwGen    string `toml:"pwgen"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		KDF:      kdf.Default.String(),
		SecLevel: pwgen.DefaultSecLevel,
		PwGen:    pwgen.DefaultStrategy.String(),
	}
}

// DefaultPath returns the settings file path in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, SettingsFile), nil
}

// Normalize replaces unknown or out of range values with the built-in defaults.
func (s Settings) Normalize() Settings {
	defaults := DefaultSettings()

	if _, ok := kdf.Parse(s.KDF); !ok {
		s.KDF = defaults.KDF
	}

	if !pwgen.ValidSecLevel(s.SecLevel) {
		s.SecLevel = defaults.SecLevel
	}

	if _, ok := pwgen.ParseStrategy(s.PwGen); !ok {
		s.PwGen = defaults.PwGen
	}

	return s
}

// KDFID returns the configured key derivation function.
func (s Settings) KDFID() kdf.ID {
	return kdf.Resolve(s.KDF, kdf.Default)
}

// Strategy returns the configured password generation strategy.
func (s Settings) Strategy() pwgen.Strategy {
	if strategy, ok := pwgen.ParseStrategy(s.PwGen); ok {
		return strategy
	}

	return pwgen.DefaultStrategy
}

// LoadSettings reads the settings file at path.
// A missing file yields the defaults, as do unknown values in an existing file.
// A file that cannot be read or decoded is an error, returned together with
// the defaults so that callers can warn and carry on.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}

	if err != nil {
		return DefaultSettings(), fmt.Errorf("reading settings %q: %w", path, err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("decoding settings %q: %w", path, err)
	}

	return settings.Normalize(), nil
}

// SaveSettings writes the settings to path, replacing any existing file.
func SaveSettings(path string, settings Settings) error {
	data, err := toml.Marshal(settings.Normalize())
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if _, err := fileutil.WriteAtomic(path, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing settings %q: %w", path, err)
	}

	return nil
}
