package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/huh-go/internal/domain"
)

type recordedCall struct {
	name string
	args []string
}

func newTestCapturer(vars map[string]string, output string, runErr error, lines int) (*TmuxCapturer, *[]recordedCall) {
	var calls []recordedCall
	env := environment{
		getenv: func(key string) string { return vars[key] },
		lookPath: func(name string) (string, error) {
			if vars["_no_tmux"] != "" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + name, nil
		},
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			calls = append(calls, recordedCall{name: name, args: args})
			return output, runErr
		},
		ppid: func() int { return 1 },
	}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &TmuxCapturer{env: env, lines: lines, now: func() time.Time { return fixed }}, &calls
}

func TestCapturePaneOutsideTmux(t *testing.T) {
	capturer, calls := newTestCapturer(map[string]string{}, "", nil, 0)

	_, err := capturer.CapturePane(context.Background())
	if !errors.Is(err, domain.ErrNoMultiplexerSession) {
		t.Fatalf("expected ErrNoMultiplexerSession, got %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("tmux must not be invoked outside a session, got %+v", *calls)
	}
}

func TestCapturePaneMissingBinary(t *testing.T) {
	capturer, _ := newTestCapturer(map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0", "_no_tmux": "1"}, "", nil, 0)

	_, err := capturer.CapturePane(context.Background())
	if !errors.Is(err, domain.ErrNoMultiplexerSession) {
		t.Fatalf("expected ErrNoMultiplexerSession, got %v", err)
	}
}

func TestCapturePaneArguments(t *testing.T) {
	vars := map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0", "TMUX_PANE": "%3"}
	capturer, calls := newTestCapturer(vars, "$ make\nerror\n\n\n", nil, 500)

	pane, err := capturer.CapturePane(context.Background())
	if err != nil {
		t.Fatalf("CapturePane error: %v", err)
	}
	if pane.Raw != "$ make\nerror" {
		t.Fatalf("unexpected raw pane %q", pane.Raw)
	}
	if pane.Source != "tmux:%3" {
		t.Fatalf("unexpected source %q", pane.Source)
	}
	got := strings.Join((*calls)[0].args, " ")
	if got != "capture-pane -p -J -t %3 -S -500" {
		t.Fatalf("unexpected tmux args %q", got)
	}
}

func TestCapturePaneFullScrollback(t *testing.T) {
	capturer, calls := newTestCapturer(map[string]string{"TMUX": "x"}, "out", nil, 0)

	if _, err := capturer.CapturePane(context.Background()); err != nil {
		t.Fatalf("CapturePane error: %v", err)
	}
	got := strings.Join((*calls)[0].args, " ")
	if got != "capture-pane -p -J -S -" {
		t.Fatalf("unexpected tmux args %q", got)
	}
}

func TestCapturePaneCommandFailure(t *testing.T) {
	capturer, _ := newTestCapturer(map[string]string{"TMUX": "x"}, "", errors.New("no server running"), 0)

	_, err := capturer.CapturePane(context.Background())
	var captureErr *domain.CaptureError
	if !errors.As(err, &captureErr) {
		t.Fatalf("expected CaptureError, got %T", err)
	}
	if errors.Is(err, domain.ErrNoMultiplexerSession) {
		t.Fatal("a tmux runtime failure is not a missing session")
	}
}
