package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/jotter/internal/commands"
	"github.com/idelchi/jotter/internal/config"
	"github.com/idelchi/jotter/internal/envelope"
	"github.com/idelchi/jotter/internal/kdf"
	"github.com/idelchi/jotter/internal/store"
)

const password = "s3cret password"

// The commands bind their flags to the global viper instance, so none of
// these tests run in parallel.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	root := commands.NewRootCommand(&config.Config{}, "test")
	root.SetArgs(args)

	return root.Execute()
}

func TestCommandFlow(t *testing.T) {
	t.Setenv("JOTTER_PASSWORD", password)

	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.toml")
	input := filepath.Join(dir, "plain.json")
	file := filepath.Join(dir, "store.jot")

	if err := os.WriteFile(input, []byte(`[{"Key":"email","Text":"a@b.com"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "cfg", "-q", "-c", settings, "--kdf", "scrypt"); err != nil {
		t.Fatalf("cfg error = %v", err)
	}

	steps := [][]string{
		{"enc", "-q", "-c", settings, input, file},
		{"put", "-q", "-c", settings, file, "bank", "1234"},
		{"mv", "-q", "-c", settings, file, "email", "mail"},
		{"verify", "-q", "-c", settings, "-j", "1", file},
	}

	for _, args := range steps {
		if err := execute(t, args...); err != nil {
			t.Fatalf("%v error = %v", args, err)
		}
	}

	header, err := envelope.InspectFile(file)
	if err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}

	if header.KDF != kdf.Scrypt {
		t.Errorf("file KDF = %v, want the settings default %v", header.KDF, kdf.Scrypt)
	}

	s := store.New(kdf.Scrypt)
	if err := s.Load(file, password); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if text, _ := s.Get("mail"); text != "a@b.com" {
		t.Errorf("Get(mail) = %q, want %q", text, "a@b.com")
	}

	if text, _ := s.Get("bank"); text != "1234" {
		t.Errorf("Get(bank) = %q, want %q", text, "1234")
	}
}

func TestRejectsUnknownKDF(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")

	if err := execute(t, "gen", "-q", "-c", settings, "--kdf", "md5"); err == nil {
		t.Error("unknown --kdf should be rejected")
	}

	if _, err := os.Stat(settings); err == nil {
		t.Error("a rejected command wrote the settings file")
	}
}

func TestArgumentCount(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")

	if err := execute(t, "put", "-c", settings, "store.jot", "name"); err == nil {
		t.Error("put without text should be rejected")
	}
}

func TestBrokenSettingsFallBackToDefaults(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(settings, []byte("pbkdf = = ["), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "cfg", "-q", "-c", settings, "--kdf", "scrypt"); err != nil {
		t.Fatalf("cfg with a broken settings file error = %v", err)
	}

	repaired, err := config.LoadSettings(settings)
	if err != nil {
		t.Fatalf("LoadSettings() after repair error = %v", err)
	}

	want := config.DefaultSettings()
	want.KDF = kdf.Scrypt.String()

	if repaired != want {
		t.Errorf("repaired settings = %+v, want %+v", repaired, want)
	}
}
