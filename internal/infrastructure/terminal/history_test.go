package terminal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/huh-go/internal/domain"
)

func fakeEnv(vars map[string]string, psOutput string) environment {
	return environment{
		getenv: func(key string) string { return vars[key] },
		lookPath: func(name string) (string, error) {
			return "/usr/bin/" + name, nil
		},
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			if name == "ps" && psOutput != "" {
				return psOutput + "\n", nil
			}
			return "", errors.New("unexpected command " + name)
		},
		ppid: func() int { return 4242 },
	}
}

func newTestReader(t *testing.T, vars map[string]string, ps string) (*HistoryReader, string) {
	t.Helper()
	home := t.TempDir()
	return &HistoryReader{
		env:          fakeEnv(vars, ps),
		home:         home,
		defaultShell: domain.ShellUnknown,
		readFile:     os.ReadFile,
	}, home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestReadHistoryBash(t *testing.T) {
	reader, home := newTestReader(t, nil, "bash")
	writeFile(t, filepath.Join(home, ".bash_history"), "#1700000000\nls -la\ncd src\nhuh\nmake test\nhistory | tail\n")

	entries, err := reader.ReadHistory(context.Background(), 2)
	if err != nil {
		t.Fatalf("ReadHistory error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Command != "cd src" || entries[1].Command != "make test" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestReadHistoryZshExtended(t *testing.T) {
	reader, home := newTestReader(t, map[string]string{"SHELL": "/bin/zsh"}, "")
	writeFile(t, filepath.Join(home, ".zsh_history"),
		": 1700000000:0;git status\n: 1700000005:0;for f in *; do\\\necho $f\\\ndone\n: 1700000009:0;wut\n: 1700000010:2;gti push\n")

	entries, err := reader.ReadHistory(context.Background(), 10)
	if err != nil {
		t.Fatalf("ReadHistory error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", entries)
	}
	if entries[1].Command != "for f in *; do\necho $f\ndone" {
		t.Fatalf("multi-line command not joined: %q", entries[1].Command)
	}
	if entries[2].Command != "gti push" {
		t.Fatalf("expected last command gti push, got %q", entries[2].Command)
	}
	if !entries[2].Timestamp.Equal(time.Unix(1700000010, 0)) {
		t.Fatalf("unexpected timestamp %v", entries[2].Timestamp)
	}
}

func TestReadHistoryFish(t *testing.T) {
	reader, home := newTestReader(t, map[string]string{"FISH_VERSION": "3.7.0"}, "")
	writeFile(t, filepath.Join(home, ".local/share/fish/fish_history"),
		"- cmd: echo one\\ntwo\n  when: 1700000000\n- cmd: cargo build\n  when: 1700000100\n  paths:\n    - src\n")

	entries, err := reader.ReadHistory(context.Background(), 5)
	if err != nil {
		t.Fatalf("ReadHistory error: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "echo one\ntwo" || entries[1].Command != "cargo build" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestReadHistoryPrefersHISTFILE(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom_history")
	reader, home := newTestReader(t, map[string]string{"HISTFILE": custom, "SHELL": "/bin/bash"}, "")
	writeFile(t, custom, "from-histfile\n")
	writeFile(t, filepath.Join(home, ".bash_history"), "from-default\n")

	entries, err := reader.ReadHistory(context.Background(), 1)
	if err != nil {
		t.Fatalf("ReadHistory error: %v", err)
	}
	if entries[0].Command != "from-histfile" {
		t.Fatalf("expected HISTFILE to win, got %q", entries[0].Command)
	}
}

func TestReadHistoryFishIgnoresInheritedHISTFILE(t *testing.T) {
	bashHistory := filepath.Join(t.TempDir(), "bash_history")
	reader, home := newTestReader(t, map[string]string{"FISH_VERSION": "3.7.0", "HISTFILE": bashHistory}, "")
	writeFile(t, bashHistory, "from-bash\n")
	writeFile(t, filepath.Join(home, ".local/share/fish/fish_history"), "- cmd: from-fish\n  when: 1700000000\n")

	for _, path := range reader.Candidates(domain.ShellFish) {
		if path == bashHistory {
			t.Fatalf("fish candidates include HISTFILE: %v", reader.Candidates(domain.ShellFish))
		}
	}
	entries, err := reader.ReadHistory(context.Background(), 1)
	if err != nil {
		t.Fatalf("ReadHistory error: %v", err)
	}
	if len(entries) != 1 || entries[0].Command != "from-fish" {
		t.Fatalf("expected fish history, got %+v", entries)
	}
}

func TestReadHistoryUnsupportedShell(t *testing.T) {
	reader, _ := newTestReader(t, map[string]string{"SHELL": "/usr/bin/nu"}, "nu")

	_, err := reader.ReadHistory(context.Background(), 2)
	if !errors.Is(err, domain.ErrUnsupportedShell) {
		t.Fatalf("expected ErrUnsupportedShell, got %v", err)
	}

	reader.defaultShell = domain.ShellBash
	if got := reader.DetectShell(context.Background()); got != domain.ShellBash {
		t.Fatalf("expected default shell fallback, got %s", got)
	}
}

func TestReadHistoryUnavailable(t *testing.T) {
	reader, home := newTestReader(t, map[string]string{"SHELL": "/bin/bash"}, "")
	writeFile(t, filepath.Join(home, ".bash_history"), "\n\n")

	_, err := reader.ReadHistory(context.Background(), 2)
	if !errors.Is(err, domain.ErrHistoryUnavailable) {
		t.Fatalf("expected ErrHistoryUnavailable, got %v", err)
	}
	var captureErr *domain.CaptureError
	if !errors.As(err, &captureErr) || captureErr.Source != "history" {
		t.Fatalf("expected CaptureError from history, got %T", err)
	}
}

func TestDetectShellOrder(t *testing.T) {
	ctx := context.Background()

	if got := detectShell(ctx, fakeEnv(map[string]string{"ZSH_VERSION": "5.9", "SHELL": "/bin/bash"}, "")); got != domain.ShellZsh {
		t.Fatalf("ZSH_VERSION should win, got %s", got)
	}
	if got := detectShell(ctx, fakeEnv(map[string]string{"SHELL": "/bin/bash"}, "-zsh")); got != domain.ShellZsh {
		t.Fatalf("parent process should win over SHELL, got %s", got)
	}
	if got := detectShell(ctx, fakeEnv(map[string]string{"SHELL": "/bin/bash"}, "")); got != domain.ShellBash {
		t.Fatalf("SHELL fallback expected bash, got %s", got)
	}
}

func TestIsSelfInvocation(t *testing.T) {
	cases := map[string]bool{
		"huh":                     true,
		"huh -w @main.go add log": true,
		"/usr/local/bin/wut":      true,
		"FOO=1 huh":               true,
		"history | grep ssh":      true,
		"git huh":                 false,
		"echo huh":                false,
		"make test":               false,
		"if [ -f x ; then":        false,
	}
	for command, want := range cases {
		if got := isSelfInvocation(command); got != want {
			t.Errorf("isSelfInvocation(%q) = %v, want %v", command, got, want)
		}
	}
}

func TestUnmetafy(t *testing.T) {
	// "é" is 0xC3 0xA9; zsh stores 0xC3 as 0x83 0xE3.
	if got := unmetafy("caf\x83\xe3\xa9"); got != "café" {
		t.Fatalf("unmetafy = %q", got)
	}
}
