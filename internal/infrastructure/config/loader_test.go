package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/domain"
)

func TestDefaultConfigIsConsistent(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultModelName, cfg.Preferences.DefaultModel)
	assert.NoError(t, cfg.ValidateConsistency())
	assert.Equal(t, 30, cfg.Preferences.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Context.Scrollback)
	assert.Equal(t, 8, cfg.Display.DiffPreviewLines)
	assert.True(t, cfg.Display.Color)
	assert.True(t, cfg.Security.Enabled)

	model, err := cfg.GetDefaultModel()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, model.Kind())
	assert.True(t, cfg.HasModel("gemini-2.5-flash-lite"))
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "cfg", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModelName, cfg.Preferences.DefaultModel)

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(home, ".huh", "guardrail.yaml"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  api_timeout: 5\ndisplay:\n  color: false\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Preferences.TimeoutSeconds)
	assert.False(t, cfg.Display.Color)
	assert.True(t, cfg.Display.Spinner, "omitted key keeps default")
	assert.NotEmpty(t, cfg.Models)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences: [oops"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	require.NoError(t, cfg.SetDefaultModel("claude-haiku"))
	require.NoError(t, loader.Save(context.Background(), cfg))

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku", loaded.Preferences.DefaultModel)

	require.NoError(t, loader.Reset())
	loaded, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModelName, loaded.Preferences.DefaultModel)
}

func TestPathHonoursEnvironment(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "alt.yaml")
	t.Setenv(EnvConfigPath, custom)
	assert.Equal(t, custom, NewFileLoader("").Path())
}

func TestBackupCopiesCurrentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	_, err := loader.Backup()
	assert.Error(t, err, "nothing to back up yet")

	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  api_timeout: 45\n"), 0o600))
	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "preferences:\n  api_timeout: 45\n", string(data))
}
