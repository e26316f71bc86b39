package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_cipher = \"aes-128-cbc\"\npassword_length = 48\ngpg_binary = \"/opt/gpg\"\n"), 0600))

	t.Setenv("VELLUM_CIPHER", "aes-256-gcm")
	t.Setenv("VELLUM_DEBUG", "true")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "aes-256-gcm", s.DefaultCipher)
	assert.Equal(t, 48, s.PasswordLength)
	assert.Equal(t, "/opt/gpg", s.GPGBinary)
	assert.Equal(t, "git", s.GitBinary)
	assert.True(t, s.Debug)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv("VELLUM_PASSWORD_LENGTH", "0")
	_, err := LoadSettings("")
	assert.ErrorContains(t, err, "password_length")

	t.Setenv("VELLUM_PASSWORD_LENGTH", "many")
	_, err = LoadSettings("")
	assert.Error(t, err)
}

func TestLoadSettings_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_cipher = [unterminated"), 0600))

	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "failed to load settings")
}

func TestSettingsPath_EnvOverride(t *testing.T) {
	t.Setenv("VELLUM_CONFIG", "/tmp/custom.toml")
	p, err := SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", p)
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	want := DefaultSettings()
	want.DefaultCipher = "bf-cbc"

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
