// Package contextwin builds the bounded terminal context sent with a request.
package contextwin

import (
	"strings"
	"unicode/utf8"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/sanitize"
)

// Assembler bounds the rendered window to MaxChars bytes.
type Assembler struct {
	MaxChars int
}

// Assemble uses the default budget.
func Assemble(pane string, history []domain.HistoryEntry, scrollback int) domain.ContextWindow {
	return Assembler{MaxChars: domain.DefaultContextMaxChars}.Assemble(pane, history, scrollback)
}

// Assemble keeps the last scrollback history entries and as much of the
// sanitized pane as fits. The pane loses its oldest output first; the
// history block loses its oldest entries only when it alone exceeds the
// budget.
func (a Assembler) Assemble(pane string, history []domain.HistoryEntry, scrollback int) domain.ContextWindow {
	budget := a.MaxChars
	if budget <= 0 {
		budget = domain.DefaultContextMaxChars
	}
	if scrollback < 0 {
		scrollback = 0
	}

	entries := lastEntries(history, scrollback)
	window := domain.ContextWindow{Scrollback: scrollback}

	for len(entries) > 0 && len(domain.RenderHistory(entries)) > budget {
		entries = entries[1:]
		window.DroppedHistory++
	}
	window.History = entries

	clean := sanitize.Sanitize(pane)
	if clean == "" {
		return window
	}

	// Overhead of the pane section is measured with a one byte placeholder.
	overhead := len(domain.RenderContext(entries, "x")) - 1
	room := budget - overhead
	if room <= 0 {
		window.PaneTruncated = true
		return window
	}
	if len(clean) > room {
		clean = keepTail(clean, room)
		window.PaneTruncated = true
	}
	window.Pane = clean
	return window
}

// lastEntries copies at most n trailing entries with sanitized commands.
func lastEntries(history []domain.HistoryEntry, n int) []domain.HistoryEntry {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]domain.HistoryEntry, 0, len(history))
	for _, entry := range history {
		command := strings.TrimSpace(sanitize.Sanitize(entry.Command))
		out = append(out, domain.HistoryEntry{Command: command, Timestamp: entry.Timestamp})
	}
	return out
}

// keepTail returns at most limit trailing bytes of s, starting on a line
// boundary when the cut leaves one available and never inside a rune.
func keepTail(s string, limit int) string {
	cut := len(s) - limit
	tail := s[cut:]
	if s[cut-1] == '\n' {
		return tail
	}
	if idx := strings.IndexByte(tail, '\n'); idx >= 0 && idx < len(tail)-1 {
		return tail[idx+1:]
	}
	for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
		tail = tail[1:]
	}
	return tail
}
