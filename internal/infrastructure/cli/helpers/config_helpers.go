package helpers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/doeshing/huh-go/internal/app"
	configapp "github.com/doeshing/huh-go/internal/application/config"
	"github.com/doeshing/huh-go/internal/domain"
)

// ConfigStore is the part of the config loader that saving needs.
type ConfigStore interface {
	Path() string
	Backup() (string, error)
	Save(ctx context.Context, cfg domain.Config) error
}

// SaveConfigWithValidation validates cfg and saves it through the
// container's loader.
func SaveConfigWithValidation(ctx context.Context, container *app.Container, cfg domain.Config) error {
	if container.ConfigLoader == nil {
		return errors.New("config loader unavailable")
	}
	_, err := SaveConfig(ctx, container.ConfigLoader, cfg)
	return err
}

// SaveConfig validates cfg, copies the current file to a backup when one
// exists, then writes cfg. It returns the backup path, empty when there was
// nothing to back up. An invalid cfg leaves the file untouched.
func SaveConfig(ctx context.Context, store ConfigStore, cfg domain.Config) (string, error) {
	if err := configapp.Validate(cfg); err != nil {
		return "", fmt.Errorf("configuration validation failed: %w", err)
	}

	var backup string
	switch _, err := os.Stat(store.Path()); {
	case err == nil:
		backup, err = store.Backup()
		if err != nil {
			return "", fmt.Errorf("failed to create configuration backup: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("stat configuration: %w", err)
	}

	if err := store.Save(ctx, cfg); err != nil {
		return backup, fmt.Errorf("failed to save configuration: %w", err)
	}
	return backup, nil
}
