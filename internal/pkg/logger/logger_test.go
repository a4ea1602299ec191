package logger

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := Wrap(zap.New(core))

	log.Debug("captured pane", map[string]interface{}{"bytes": 42})
	log.Warn("history unavailable", nil)
	log.Error("completion failed", errors.New("boom"), map[string]interface{}{"model": "gemini"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "captured pane", entries[0].Message)
	assert.EqualValues(t, 42, entries[0].ContextMap()["bytes"])
	assert.Empty(t, entries[1].Context)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
	assert.Equal(t, "gemini", entries[2].ContextMap()["model"])
}

func TestNopLogger(t *testing.T) {
	log := Nop()
	log.Info("ignored", map[string]interface{}{"k": "v"})
	assert.NoError(t, log.Sync())
}

func TestNewWritesToFile(t *testing.T) {
	path := t.TempDir() + "/logs/huh.log"
	log, err := New(path, true)
	require.NoError(t, err)
	log.Debug("hello", nil)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"logger":"huh"`)
}
