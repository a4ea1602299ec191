package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

// TmuxCapturer reads the pane the tool was invoked from.
type TmuxCapturer struct {
	env   environment
	lines int
	now   func() time.Time
}

// NewTmuxCapturer builds a capturer. lines bounds how much scrollback is
// requested; 0 captures the whole history of the pane.
func NewTmuxCapturer(lines int) *TmuxCapturer {
	return &TmuxCapturer{env: systemEnvironment(), lines: lines, now: time.Now}
}

// InTmux returns true if currently inside a tmux session
func (c *TmuxCapturer) InTmux() bool {
	return c.env.getenv("TMUX") != ""
}

// IsInstalled checks if the tmux binary is on PATH
func (c *TmuxCapturer) IsInstalled() bool {
	_, err := c.env.lookPath("tmux")
	return err == nil
}

// CapturePane implements ports.PaneCapturer.
func (c *TmuxCapturer) CapturePane(ctx context.Context) (domain.CapturedPane, error) {
	if !c.InTmux() {
		return domain.CapturedPane{}, &domain.CaptureError{Source: "tmux", Err: domain.ErrNoMultiplexerSession}
	}
	if !c.IsInstalled() {
		return domain.CapturedPane{}, &domain.CaptureError{
			Source: "tmux",
			Err:    fmt.Errorf("%w: tmux binary not found on PATH", domain.ErrNoMultiplexerSession),
		}
	}

	args := c.captureArgs()
	out, err := c.env.run(ctx, "tmux", args...)
	if err != nil {
		return domain.CapturedPane{}, &domain.CaptureError{Source: "tmux", Err: err}
	}

	source := "tmux"
	if pane := c.env.getenv("TMUX_PANE"); pane != "" {
		source = "tmux:" + pane
	}
	return domain.CapturedPane{
		Raw:        strings.TrimRight(out, "\n"),
		Source:     source,
		CapturedAt: c.now(),
	}, nil
}

func (c *TmuxCapturer) captureArgs() []string {
	// -J joins wrapped lines so long output is not split at the pane width.
	args := []string{"capture-pane", "-p", "-J"}
	if pane := c.env.getenv("TMUX_PANE"); pane != "" {
		args = append(args, "-t", pane)
	}
	if c.lines > 0 {
		args = append(args, "-S", fmt.Sprintf("-%d", c.lines))
	} else {
		args = append(args, "-S", "-")
	}
	return args
}

var _ ports.PaneCapturer = (*TmuxCapturer)(nil)
