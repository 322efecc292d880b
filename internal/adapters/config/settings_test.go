package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/adapters/config"
	"go.trai.ch/quack/internal/core/domain"
)

// isolateUserConfig points the user config dir at an empty directory so
// settings on the developer machine never leak into the tests.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)
}

func TestLoadSettings_Defaults(t *testing.T) {
	isolateUserConfig(t)

	settings, err := config.LoadSettings(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, string(domain.CacheModeDev), settings.Cache)
	assert.Positive(t, settings.Jobs)
	assert.Equal(t, "quack-cache", settings.OSS.Prefix)
	assert.True(t, settings.OSS.Secure)
	assert.NotEmpty(t, settings.CacheDir)
	assert.False(t, settings.Remote(), "no remote configured by default")
}

func TestLoadSettings_ProjectFileOverride(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	content := `
cache: local
jobs: 3
oss:
  endpoint: play.min.io
  bucket: builds
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quack.yaml"), []byte(content), 0o600))

	settings, err := config.LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, "local", settings.Cache)
	assert.Equal(t, 3, settings.Jobs)
	assert.Equal(t, "play.min.io", settings.OSS.Endpoint)
	assert.Equal(t, "builds", settings.OSS.Bucket)
	assert.True(t, settings.Remote())
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("QUACK_CACHE", "cloud")
	t.Setenv("QUACK_JOBS", "7")
	t.Setenv("QUACK_OSS__ENDPOINT", "oss.example.com")
	t.Setenv("QUACK_OSS__ACCESS_KEY_ID", "AKID")

	settings, err := config.LoadSettings(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "cloud", settings.Cache)
	assert.Equal(t, 7, settings.Jobs)
	assert.Equal(t, "oss.example.com", settings.OSS.Endpoint)
	assert.Equal(t, "AKID", settings.OSS.AccessKeyID)
}

func TestLoadSettings_EnvBeatsProjectFile(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quack.yaml"), []byte("cache: local\n"), 0o600))
	t.Setenv("QUACK_CACHE", "false")

	settings, err := config.LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "false", settings.Cache)

	mode, err := settings.CacheMode()
	require.NoError(t, err)
	assert.Equal(t, domain.CacheModeDisabled, mode)
}

func TestLoadSettings_InvalidCacheMode(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("QUACK_CACHE", "sometimes")

	_, err := config.LoadSettings(t.TempDir())
	require.ErrorIs(t, err, domain.ErrInvalidCacheMode)
}
