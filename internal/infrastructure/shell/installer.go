// Package shell installs the hook that keeps shell history fresh for huh.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rootassets "github.com/doeshing/huh-go/assets"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
	"github.com/doeshing/huh-go/internal/ports"
)

const headerComment = "# Added by huh installer\n"

// Installer writes the hook script under ~/.huh/shell and sources it from the
// shell's rc file.
type Installer struct {
	home   string
	logger ports.Logger
}

// NewInstaller builds a shell installer rooted at the user's home directory.
func NewInstaller(logger ports.Logger) *Installer {
	return &Installer{home: filesystem.UserHomeDir(), logger: logger}
}

// NewInstallerAt is used by tests to install into a scratch home.
func NewInstallerAt(home string, logger ports.Logger) *Installer {
	return &Installer{home: home, logger: logger}
}

// Install writes the hook for shell and appends the source line to its rc file.
func (i *Installer) Install(shell domain.ShellKind, force bool) (domain.ShellInstallResult, error) {
	script, err := scriptFor(shell)
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	scriptPath, rcFile := i.paths(shell)
	if err := os.MkdirAll(filepath.Dir(scriptPath), domain.DirectoryPermissions); err != nil {
		return domain.ShellInstallResult{}, err
	}
	if err := filesystem.AtomicWriteFile(scriptPath, []byte(script), domain.NewFilePermissions); err != nil {
		return domain.ShellInstallResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(rcFile), domain.DirectoryPermissions); err != nil {
		return domain.ShellInstallResult{}, err
	}

	rcUpdated, err := ensureRCLine(rcFile, i.sourceLine(shell, scriptPath), force)
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	i.logger.Info("shell hook installed", map[string]interface{}{
		"shell": string(shell), "rc_file": rcFile, "rc_updated": rcUpdated,
	})

	return domain.ShellInstallResult{
		Shell:         shell,
		ScriptPath:    scriptPath,
		RCFile:        rcFile,
		ScriptUpdated: true,
		RCUpdated:     rcUpdated,
	}, nil
}

// Uninstall removes the sourcing line from the rc file (script retained as backup).
func (i *Installer) Uninstall(shell domain.ShellKind) (domain.ShellInstallResult, error) {
	if !shell.Supported() {
		return domain.ShellInstallResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedShell, shell)
	}
	scriptPath, rcFile := i.paths(shell)
	updated, err := removeRCLine(rcFile, i.sourceLine(shell, scriptPath))
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	return domain.ShellInstallResult{
		Shell:      shell,
		ScriptPath: scriptPath,
		RCFile:     rcFile,
		RCUpdated:  updated,
	}, nil
}

// Status reports current integration state.
func (i *Installer) Status(shell domain.ShellKind) domain.ShellStatus {
	status := domain.ShellStatus{Shell: shell}
	if !shell.Supported() {
		status.Error = "unsupported shell"
		return status
	}
	status.ScriptPath, status.RCFile = i.paths(shell)

	if info, err := os.Stat(status.ScriptPath); err == nil && info.Mode().IsRegular() {
		status.ScriptExists = true
	}
	if contents, err := os.ReadFile(status.RCFile); err == nil {
		status.LinePresent = strings.Contains(string(contents), i.sourceLine(shell, status.ScriptPath))
	}
	return status
}

func scriptFor(shell domain.ShellKind) (string, error) {
	switch shell {
	case domain.ShellZsh:
		return rootassets.ZshHook, nil
	case domain.ShellBash:
		return rootassets.BashHook, nil
	case domain.ShellFish:
		return rootassets.FishHook, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedShell, shell)
	}
}

func (i *Installer) paths(shell domain.ShellKind) (string, string) {
	ext := ".sh"
	if shell == domain.ShellFish {
		ext = ".fish"
	}
	return filepath.Join(i.home, ".huh", "shell", string(shell)+ext), filepath.Join(i.home, shell.RCFile())
}

func (i *Installer) sourceLine(shell domain.ShellKind, scriptPath string) string {
	path := i.homeRelative(scriptPath)
	if shell == domain.ShellFish {
		return fmt.Sprintf("test -f %s; and source %s", path, path)
	}
	return fmt.Sprintf("[ -f %s ] && source %s", path, path)
}

func (i *Installer) homeRelative(path string) string {
	if rel, err := filepath.Rel(i.home, path); err == nil && !strings.HasPrefix(rel, "..") {
		return "$HOME/" + filepath.ToSlash(rel)
	}
	return path
}

func ensureRCLine(path string, line string, force bool) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if errors.Is(err, os.ErrNotExist) {
		return true, os.WriteFile(path, []byte(headerComment+line+"\n"), domain.NewFilePermissions)
	}
	if strings.Contains(string(contents), line) && !force {
		return false, nil
	}
	var filtered []string
	for _, existing := range strings.Split(string(contents), "\n") {
		if strings.Contains(existing, line) || existing == strings.TrimSpace(headerComment) {
			continue
		}
		filtered = append(filtered, existing)
	}
	final := strings.TrimRight(strings.Join(filtered, "\n"), "\n")
	if final != "" {
		final += "\n"
	}
	final += headerComment + line + "\n"
	return true, os.WriteFile(path, []byte(final), domain.NewFilePermissions)
}

func removeRCLine(path string, line string) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var filtered []string
	removed := false
	for _, existing := range strings.Split(string(contents), "\n") {
		if strings.Contains(existing, line) {
			removed = true
			continue
		}
		if existing == strings.TrimSpace(headerComment) {
			continue
		}
		filtered = append(filtered, existing)
	}
	if !removed {
		return false, nil
	}
	final := strings.TrimRight(strings.Join(filtered, "\n"), "\n")
	if final != "" {
		final += "\n"
	}
	return true, os.WriteFile(path, []byte(final), domain.NewFilePermissions)
}

var _ ports.ShellIntegrator = (*Installer)(nil)
