package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	defaultPasswordLength = 30
	envPrefix             = "VELLUM_"
)

// Settings are the user-level knobs of the vellum CLI.
type Settings struct {
	GitBinary      string `toml:"git_binary" env:"GIT"`
	GPGBinary      string `toml:"gpg_binary" env:"GPG"`
	DefaultCipher  string `toml:"default_cipher" env:"CIPHER"`
	PasswordLength int    `toml:"password_length" env:"PASSWORD_LENGTH"`

	// Debug is only taken from the environment; filter processes have no flags.
	Debug bool `toml:"-" env:"DEBUG"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		GitBinary:      "git",
		GPGBinary:      "gpg",
		DefaultCipher:  "aes-256-cbc",
		PasswordLength: defaultPasswordLength,
	}
}

// SettingsPath returns the settings file location, honoring VELLUM_CONFIG.
func SettingsPath() (string, error) {
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(dir, "vellum", "config.toml"), nil
}

// LoadSettings reads settings from path, which may not exist, and applies
// environment overrides.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		err := LoadTOML(path, s)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(s, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.PasswordLength < 1 {
		return fmt.Errorf("invalid settings: password_length must be at least 1 (got %d)", s.PasswordLength)
	}
	if s.GitBinary == "" {
		return fmt.Errorf("invalid settings: git_binary cannot be empty")
	}
	return nil
}

// SaveSettings writes s to path.
func SaveSettings(path string, s *Settings) error {
	if err := SaveTOML(path, s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
