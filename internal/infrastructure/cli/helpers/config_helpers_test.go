package helpers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/infrastructure/config"
)

func TestSaveConfigBacksUpExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".huh", "config.yaml")
	loader := config.NewFileLoader(path)
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	cfg.Preferences.Temperature = 0.3
	backup, err := SaveConfig(ctx, loader, cfg)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, before, saved)

	reloaded, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, reloaded.Preferences.Temperature, 0.001)
}

func TestSaveConfigRejectsInvalidConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".huh", "config.yaml")
	loader := config.NewFileLoader(path)
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	cfg.Preferences.DefaultModel = "no-such-model"
	_, err = SaveConfig(ctx, loader, cfg)
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, path+".bak")
}
