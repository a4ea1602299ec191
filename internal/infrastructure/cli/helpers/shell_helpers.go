package helpers

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

const (
	shellAutoDetect = "auto"
	shellAll        = "all"
)

// DetermineTargetShells resolves which shells to operate on based on the flag value
func DetermineTargetShells(ctx context.Context, shellFlag string, reader ports.ShellHistoryReader) ([]domain.ShellKind, error) {
	normalizedFlag := strings.ToLower(strings.TrimSpace(shellFlag))

	switch normalizedFlag {
	case "", shellAutoDetect:
		return autoDetectShells(ctx, reader), nil
	case shellAll:
		return AllSupportedShells(), nil
	default:
		return parseSingleShell(normalizedFlag)
	}
}

// autoDetectShells attempts to detect the current shell, falling back to all shells
func autoDetectShells(ctx context.Context, reader ports.ShellHistoryReader) []domain.ShellKind {
	if reader != nil {
		if detected := reader.DetectShell(ctx); detected.Supported() {
			return []domain.ShellKind{detected}
		}
	}
	return AllSupportedShells()
}

// AllSupportedShells returns all shells with a history hook.
func AllSupportedShells() []domain.ShellKind {
	return []domain.ShellKind{domain.ShellZsh, domain.ShellBash, domain.ShellFish}
}

func parseSingleShell(value string) ([]domain.ShellKind, error) {
	kind := domain.ParseShellKind(value)
	if !kind.Supported() {
		return nil, fmt.Errorf("%w: %s (supported: zsh, bash, fish)", domain.ErrUnsupportedShell, value)
	}
	return []domain.ShellKind{kind}, nil
}
