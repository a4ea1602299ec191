// Package sanitize turns raw terminal captures into plain text suitable for prompts.
package sanitize

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes escape sequences, control characters and the
// carriage-return/backspace overdraw artifacts left by progress bars and
// line editors. Newlines and tabs survive; invalid UTF-8 is dropped.
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	stripped := ansi.Strip(raw)
	filtered := dropControls(stripped)
	if !strings.ContainsAny(filtered, "\r\b") {
		return filtered
	}
	return overdraw(filtered)
}

// dropControls keeps printable runes plus the four whitespace controls that
// carry layout (\n, \t, \r, \b).
func dropControls(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	switch {
	case r == '\n', r == '\t', r == '\r', r == '\b':
		return true
	case r < 0x20, r == 0x7f:
		return false
	case r >= 0x80 && r <= 0x9f:
		return false
	default:
		return true
	}
}

// wideTail marks the second cell of a double-width rune. NUL never survives
// dropControls, so it cannot collide with real text.
const wideTail = "\x00"

// overdraw replays \r and \b within each line the way a terminal would:
// \r returns to column 0, \b moves back one cell, later text overwrites.
// Columns are display cells, so a wide rune takes two.
func overdraw(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if !strings.ContainsAny(line, "\r\b") {
			lines[i] = line
			continue
		}
		lines[i] = replayLine(line)
	}
	return strings.Join(lines, "\n")
}

func replayLine(line string) string {
	var g grid
	for _, r := range line {
		switch r {
		case '\r':
			g.col = 0
		case '\b':
			if g.col > 0 {
				g.col--
			}
		case '\t':
			g.put(string(r), 1)
		default:
			w := runewidth.RuneWidth(r)
			if w == 0 {
				g.combine(r)
				continue
			}
			g.put(string(r), w)
		}
	}
	var b strings.Builder
	for _, c := range g.cells {
		if c != wideTail {
			b.WriteString(c)
		}
	}
	return b.String()
}

type grid struct {
	cells []string
	col   int
}

// put writes text of width w at the cursor. A wide rune cut in half by the
// write leaves a blank in its other cell.
func (g *grid) put(text string, w int) {
	for k := 0; k < w; k++ {
		g.clear(g.col + k)
	}
	for len(g.cells) < g.col+w {
		g.cells = append(g.cells, " ")
	}
	g.cells[g.col] = text
	if w == 2 {
		g.cells[g.col+1] = wideTail
	}
	g.col += w
}

func (g *grid) clear(col int) {
	if col >= len(g.cells) {
		return
	}
	if g.cells[col] == wideTail && col > 0 {
		g.cells[col-1] = " "
	}
	if col+1 < len(g.cells) && g.cells[col+1] == wideTail {
		g.cells[col+1] = " "
	}
}

// combine attaches a zero-width rune to the cell left of the cursor.
func (g *grid) combine(r rune) {
	at := g.col - 1
	if at >= 0 && at < len(g.cells) && g.cells[at] == wideTail {
		at--
	}
	if at < 0 || at >= len(g.cells) {
		return
	}
	g.cells[at] += string(r)
}
