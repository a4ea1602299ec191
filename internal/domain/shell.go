package domain

import (
	"path/filepath"
	"strings"
)

// ShellKind enumerates shell families whose history can be read.
type ShellKind string

const (
	ShellUnknown ShellKind = "unknown"
	ShellZsh     ShellKind = "zsh"
	ShellBash    ShellKind = "bash"
	ShellFish    ShellKind = "fish"
)

// ParseShellKind maps a shell name or path (e.g. "/bin/zsh", "-bash") to a kind.
func ParseShellKind(name string) ShellKind {
	base := strings.TrimPrefix(filepath.Base(strings.TrimSpace(name)), "-")
	switch strings.ToLower(base) {
	case "zsh":
		return ShellZsh
	case "bash", "sh":
		return ShellBash
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}

// Supported reports whether history reading is implemented for the kind.
func (k ShellKind) Supported() bool {
	return k == ShellZsh || k == ShellBash || k == ShellFish
}

// HistoryFiles lists candidate history files relative to the home directory,
// most likely first.
func (k ShellKind) HistoryFiles() []string {
	const (
		bashFile = ".bash_history"
		zshFile  = ".zsh_history"
		histFile = ".history"
		fishFile = ".local/share/fish/fish_history"
	)
	switch k {
	case ShellZsh:
		return []string{zshFile, bashFile, histFile, fishFile}
	case ShellFish:
		return []string{fishFile, bashFile, zshFile, histFile}
	default:
		return []string{bashFile, histFile, zshFile, fishFile}
	}
}

// RCFile is the startup file the history hook is installed into.
func (k ShellKind) RCFile() string {
	switch k {
	case ShellZsh:
		return ".zshrc"
	case ShellFish:
		return ".config/fish/config.fish"
	default:
		return ".bashrc"
	}
}

// ShellInstallResult describes install/uninstall outcomes.
type ShellInstallResult struct {
	Shell         ShellKind
	ScriptPath    string
	RCFile        string
	ScriptUpdated bool
	RCUpdated     bool
}

// ShellStatus captures current integration state.
type ShellStatus struct {
	Shell        ShellKind
	ScriptPath   string
	RCFile       string
	ScriptExists bool
	LinePresent  bool
	Error        string
}
