package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/config"
)

func executeRoot(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	root, err := NewRootCmd(context.Background(), Options{ConfigPath: configPath})
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootModelFlagSetsDefault(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "long flag with separate value", args: []string{"--model", "claude-haiku"}},
		{name: "short flag with separate value", args: []string{"-m", "claude-haiku"}},
		{name: "long flag with equals", args: []string{"--model=claude-haiku"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			path := filepath.Join(home, ".huh", "config.yaml")

			out, err := executeRoot(t, path, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Default model changed from "+domain.DefaultModelName+" to claude-haiku")

			cfg, err := config.NewFileLoader(path).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "claude-haiku", cfg.Preferences.DefaultModel)
		})
	}
}

func TestRootModelFlagRejectsUnknownOrExtraNames(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".huh", "config.yaml")

	_, err := executeRoot(t, path, "--model", "no-such-model")
	assert.Error(t, err)

	_, err = executeRoot(t, path, "-m", "claude-haiku", "gpt4")
	assert.Error(t, err)

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModelName, cfg.Preferences.DefaultModel)
}
