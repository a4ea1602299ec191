// Package terminal captures the user's recent terminal activity: the tmux
// pane content and the shell history behind it.
package terminal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
)

// runner executes a helper process and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) (string, error)

// environment abstracts the process environment for tests.
type environment struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
	run      runner
	ppid     func() int
}

func systemEnvironment() environment {
	return environment{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		run:      runCmd,
		ppid:     os.Getppid,
	}
}

func runCmd(ctx context.Context, name string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, domain.DefaultCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
