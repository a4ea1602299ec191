// Package config reads and writes ~/.huh/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	rootassets "github.com/doeshing/huh-go/assets"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
	"github.com/doeshing/huh-go/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "HUH_CONFIG"

// FileLoader loads YAML configuration from ~/.huh/config.yaml (overridable via HUH_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the environment or the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. On first run the commented default
// config and guardrail rules are written to disk.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := filesystem.AtomicWriteFile(path, rootassets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, err
		}
		if err := EnsureGuardrailRules(cfg.Security.RulesFile); err != nil {
			return domain.Config{}, err
		}
		return cfg, nil
	}

	// Decoding over the defaults keeps keys the user omitted.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Save implements ports.ConfigProvider.
func (l *FileLoader) Save(_ context.Context, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return filesystem.AtomicWriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset rewrites the config file with the embedded defaults.
func (l *FileLoader) Reset() error {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return filesystem.AtomicWriteFile(path, rootassets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// Backup copies the current config file next to itself with a .bak suffix
// and returns the backup path.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if err := filesystem.AtomicWriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Path resolves the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".huh", "config.yaml")
}

// DefaultConfig decodes the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(rootassets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("embedded default config: %w", err)
	}
	return cfg, nil
}

// EnsureGuardrailRules writes the default rules file when none exists.
func EnsureGuardrailRules(path string) error {
	if path == "" {
		return nil
	}
	path = filesystem.ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return filesystem.AtomicWriteFile(path, rootassets.DefaultGuardrailYAML, domain.NewFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds <= 0 {
		cfg.Preferences.TimeoutSeconds = domain.DefaultAPITimeoutSeconds
	}
	if cfg.Preferences.ResponseLength == "" {
		cfg.Preferences.ResponseLength = domain.ResponseBalanced
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
