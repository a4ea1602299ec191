package shell

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/logger"
)

func TestInstallWritesScriptAndSourceLine(t *testing.T) {
	home := t.TempDir()
	rc := filepath.Join(home, ".zshrc")
	if err := os.WriteFile(rc, []byte("export EDITOR=vim\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	installer := NewInstallerAt(home, logger.Nop())

	result, err := installer.Install(domain.ShellZsh, false)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if !result.RCUpdated || !result.ScriptUpdated {
		t.Fatalf("expected script and rc updates, got %+v", result)
	}
	if result.ScriptPath != filepath.Join(home, ".huh", "shell", "zsh.sh") {
		t.Fatalf("unexpected script path %s", result.ScriptPath)
	}

	data, err := os.ReadFile(rc)
	if err != nil {
		t.Fatal(err)
	}
	want := "export EDITOR=vim\n# Added by huh installer\n[ -f $HOME/.huh/shell/zsh.sh ] && source $HOME/.huh/shell/zsh.sh\n"
	if string(data) != want {
		t.Fatalf("unexpected rc content:\n%s", data)
	}

	again, err := installer.Install(domain.ShellZsh, false)
	if err != nil {
		t.Fatalf("second Install error: %v", err)
	}
	if again.RCUpdated {
		t.Fatal("second install should leave the rc file alone")
	}
	data, _ = os.ReadFile(rc)
	if strings.Count(string(data), "source $HOME/.huh/shell/zsh.sh") != 1 {
		t.Fatalf("source line duplicated:\n%s", data)
	}

	status := installer.Status(domain.ShellZsh)
	if !status.ScriptExists || !status.LinePresent {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestInstallFishCreatesConfigDir(t *testing.T) {
	home := t.TempDir()
	installer := NewInstallerAt(home, logger.Nop())

	result, err := installer.Install(domain.ShellFish, false)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}
	data, err := os.ReadFile(result.RCFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "test -f $HOME/.huh/shell/fish.fish; and source $HOME/.huh/shell/fish.fish") {
		t.Fatalf("unexpected fish config:\n%s", data)
	}
}

func TestUninstallRemovesSourceLine(t *testing.T) {
	home := t.TempDir()
	installer := NewInstallerAt(home, logger.Nop())
	if _, err := installer.Install(domain.ShellBash, false); err != nil {
		t.Fatal(err)
	}

	result, err := installer.Uninstall(domain.ShellBash)
	if err != nil {
		t.Fatalf("Uninstall error: %v", err)
	}
	if !result.RCUpdated {
		t.Fatal("expected rc file update")
	}
	data, _ := os.ReadFile(filepath.Join(home, ".bashrc"))
	if strings.Contains(string(data), "huh") {
		t.Fatalf("hook still present:\n%s", data)
	}
	if status := installer.Status(domain.ShellBash); status.LinePresent || !status.ScriptExists {
		t.Fatalf("unexpected status after uninstall %+v", status)
	}

	result, err = installer.Uninstall(domain.ShellBash)
	if err != nil || result.RCUpdated {
		t.Fatalf("second uninstall should be a no-op, got %+v %v", result, err)
	}
}

func TestInstallUnsupportedShell(t *testing.T) {
	installer := NewInstallerAt(t.TempDir(), logger.Nop())
	if _, err := installer.Install(domain.ShellUnknown, false); !errors.Is(err, domain.ErrUnsupportedShell) {
		t.Fatalf("expected ErrUnsupportedShell, got %v", err)
	}
	if status := installer.Status(domain.ShellUnknown); status.Error == "" {
		t.Fatal("expected status error for unknown shell")
	}
}
