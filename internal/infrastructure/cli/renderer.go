package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/doeshing/huh-go/internal/application/assist"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
)

const ellipsis = "…"

// Renderer prints results to the terminal. Colour is used only when the
// config enables it and out is a terminal.
type Renderer struct {
	out   io.Writer
	color bool
	width int
	// mdStyle selects the glamour theme for answers on a colour terminal.
	mdStyle glamour.TermRendererOption
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// NewRenderer builds a renderer for cfg's display settings.
func NewRenderer(out io.Writer, cfg domain.Config) *Renderer {
	return &Renderer{
		out:     out,
		color:   cfg.Display.Color && IsTerminal(out),
		width:   cfg.GetMaxLineWidth(),
		mdStyle: glamour.WithAutoStyle(),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Answer prints an analysis or query answer, then the suggestion and its
// guardrail rating.
func (r *Renderer) Answer(a assist.Answer) {
	for _, warning := range a.Warnings {
		r.Warning(warning)
	}
	if a.Analysis.FromCache {
		fmt.Fprintln(r.out, r.style(dimStyle, "(cached response)"))
	}
	if text := strings.TrimSpace(a.Analysis.Text); text != "" {
		fmt.Fprintln(r.out, r.markdown(text))
	}
	if a.Analysis.Suggestion == "" {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %s\n", r.style(accentStyle, "Did you mean:"), a.Analysis.Suggestion)
	if risk := a.Analysis.Risk; risk != nil && risk.Risky() {
		style := warnStyle
		if risk.Level.Severity() >= domain.RiskHigh.Severity() {
			style = dangerStyle
		}
		fmt.Fprintln(r.out, r.style(style, fmt.Sprintf("Risk: %s (%s)", strings.ToUpper(string(risk.Level)), risk.Action)))
		for _, reason := range risk.Reasons {
			fmt.Fprintf(r.out, "  - %s\n", reason)
		}
	}
}

// markdown renders answer text as styled markdown with highlighted code
// blocks. Without colour the text is only word-wrapped.
func (r *Renderer) markdown(text string) string {
	if !r.color || r.mdStyle == nil {
		return wordwrap.String(text, r.width)
	}
	md, err := glamour.NewTermRenderer(r.mdStyle, glamour.WithWordWrap(r.width))
	if err != nil {
		return wordwrap.String(text, r.width)
	}
	rendered, err := md.Render(text)
	if err != nil {
		return wordwrap.String(text, r.width)
	}
	return strings.Trim(rendered, "\n")
}

// Proposal prints the reviewable change summary of an edit.
func (r *Renderer) Proposal(p assist.EditProposal) {
	path := filesystem.FriendlyPath(p.Path)
	if !p.Exists {
		fmt.Fprintln(r.out, r.style(headerStyle, "Creating new file: "+path))
	} else {
		fmt.Fprintln(r.out, r.style(headerStyle, "Proposed changes to "+path))
	}
	if p.NoChanges() {
		fmt.Fprintln(r.out, "No changes needed")
		return
	}

	s := p.Summary
	fmt.Fprintf(r.out, "%s, %s\n",
		r.style(addStyle, fmt.Sprintf("%d additions (+)", s.Additions)),
		r.style(removeStyle, fmt.Sprintf("%d deletions (-)", s.Deletions)))
	for _, hunk := range s.Highlights {
		line := r.clip(hunk.Kind.Marker() + " " + hunk.Line())
		switch hunk.Kind {
		case domain.HunkAdded:
			line = r.style(addStyle, line)
		case domain.HunkRemoved:
			line = r.style(removeStyle, line)
		}
		fmt.Fprintln(r.out, line)
	}
	if s.Remaining > 0 {
		fmt.Fprintln(r.out, r.style(dimStyle, fmt.Sprintf("%s and %d more changes", ellipsis, s.Remaining)))
	}
}

// Warning prints a non-fatal problem.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.out, r.style(warnStyle, "warning: "+msg))
}

// Success prints a completed action.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, r.style(successStyle, msg))
}

// Config prints the user-facing preferences.
func (r *Renderer) Config(cfg domain.Config, path string) {
	fmt.Fprintln(r.out, r.style(accentStyle, "Current configuration:"))
	rows := [][2]string{
		{"Config file", filesystem.FriendlyPath(path)},
		{"Default model", cfg.Preferences.DefaultModel},
		{"Response length", string(cfg.GetResponseLength())},
		{"Temperature", fmt.Sprintf("%.1f", cfg.Preferences.Temperature)},
		{"Max output tokens", fmt.Sprintf("%d", cfg.GetMaxOutputTokens())},
		{"Auto-save history", fmt.Sprintf("%t", cfg.History.AutoSave)},
		{"Default shell", string(cfg.GetDefaultShell())},
		{"API timeout", fmt.Sprintf("%d seconds", cfg.GetTimeoutSeconds())},
		{"Scrollback", fmt.Sprintf("%d", cfg.GetScrollback())},
		{"Guardrail", enabled(cfg.Security.Enabled)},
		{"Response cache", enabled(cfg.Cache.Enabled)},
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %s: %s\n", row[0], r.style(accentStyle, row[1]))
	}
}

// clip shortens line to the configured display width in terminal cells.
func (r *Renderer) clip(line string) string {
	if r.width <= 0 || runewidth.StringWidth(line) <= r.width {
		return line
	}
	return runewidth.Truncate(line, r.width, ellipsis)
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
