package domain

import (
	"fmt"
	"strings"
	"time"
)

// CapturedPane is the raw multiplexer pane content at capture time.
type CapturedPane struct {
	Raw        string
	Source     string
	CapturedAt time.Time
}

// HistoryEntry is one prior command line. Timestamp is zero when the
// history format does not record it.
type HistoryEntry struct {
	Command   string
	Timestamp time.Time
}

// ContextWindow is the bounded context sent with a completion request.
// History is chronological and never longer than Scrollback.
type ContextWindow struct {
	Pane           string
	History        []HistoryEntry
	Scrollback     int
	PaneTruncated  bool
	DroppedHistory int
}

const paneHeader = "Terminal output:\n"

// Text renders the window for a prompt.
func (w ContextWindow) Text() string {
	return RenderContext(w.History, w.Pane)
}

// LastCommand returns the most recent history command, if any.
func (w ContextWindow) LastCommand() string {
	if len(w.History) == 0 {
		return ""
	}
	return w.History[len(w.History)-1].Command
}

// RenderHistory formats entries as "previous command N of K" lines.
func RenderHistory(entries []HistoryEntry) string {
	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "previous command %d of %d: %s\n", i+1, len(entries), entry.Command)
	}
	return b.String()
}

// RenderContext joins the history block and pane text. The pane section is
// omitted when pane is empty.
func RenderContext(entries []HistoryEntry, pane string) string {
	history := RenderHistory(entries)
	if pane == "" {
		return history
	}
	if history == "" {
		return paneHeader + pane
	}
	return history + "\n" + paneHeader + pane
}
