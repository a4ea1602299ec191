// Package diff computes line diffs between a file and a proposed rewrite and
// condenses them into reviewable summaries.
package diff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
)

// ErrReplayMismatch is returned when a diff is replayed against content that
// is not its original side.
var ErrReplayMismatch = errors.New("diff does not apply to content")

// ErrTooLarge is returned by CheckSize when the changed region would need an
// LCS table larger than MaxTableCells.
var ErrTooLarge = errors.New("change too large to diff")

// MaxTableCells bounds the LCS table at 64 MiB of int32 entries.
const MaxTableCells = 16 << 20

// CheckSize reports whether Compute can diff original against proposed
// within MaxTableCells.
func CheckSize(original, proposed string) error {
	a, b := SplitLines(original), SplitLines(proposed)
	prefix, suffix := sharedEnds(a, b)
	n, m := len(a)-prefix-suffix, len(b)-prefix-suffix
	if n == 0 || m == 0 {
		return nil
	}
	if cells := (int64(n) + 1) * (int64(m) + 1); cells > MaxTableCells {
		return fmt.Errorf("%w: %d changed lines against %d", ErrTooLarge, n, m)
	}
	return nil
}

// Compute returns the line diff turning original into proposed. Callers
// handling untrusted sizes check CheckSize first.
//
// Lines keep their terminators, so "a" and "a\n" differ. The longest common
// subsequence is found on the region left after trimming the shared prefix
// and suffix. Ties favour matching as early as possible, and inside a change
// block removals come before additions.
func Compute(original, proposed string) domain.Diff {
	a := SplitLines(original)
	b := SplitLines(proposed)

	prefix, suffix := sharedEnds(a, b)

	hunks := make([]domain.DiffHunk, 0, len(a)+len(b)-prefix-suffix)
	w := hunkWriter{hunks: hunks}

	for i := 0; i < prefix; i++ {
		w.unchanged(a[i])
	}
	w.middle(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])
	for i := len(a) - suffix; i < len(a); i++ {
		w.unchanged(a[i])
	}

	return domain.Diff{Hunks: w.hunks}
}

// Replay applies d to original, failing when original is not the diff's
// original side.
func Replay(original string, d domain.Diff) (string, error) {
	lines := SplitLines(original)
	next := 0
	var b strings.Builder
	b.Grow(len(original))

	for _, h := range d.Hunks {
		switch h.Kind {
		case domain.HunkAdded:
			b.WriteString(h.Text)
		case domain.HunkUnchanged, domain.HunkRemoved:
			if next >= len(lines) || lines[next] != h.Text {
				return "", fmt.Errorf("replay line %d: %w", next+1, ErrReplayMismatch)
			}
			if h.Kind == domain.HunkUnchanged {
				b.WriteString(h.Text)
			}
			next++
		}
	}
	if next != len(lines) {
		return "", fmt.Errorf("replay: %d trailing lines: %w", len(lines)-next, ErrReplayMismatch)
	}
	return b.String(), nil
}

// sharedEnds counts the leading and trailing lines a and b have in common.
// The two never overlap.
func sharedEnds(a, b []string) (prefix, suffix int) {
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return prefix, suffix
}

// SplitLines splits s after every "\n". A final line without a terminator is
// kept as is; the empty string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type hunkWriter struct {
	hunks   []domain.DiffHunk
	oldLine int
	newLine int
}

func (w *hunkWriter) unchanged(text string) {
	w.oldLine++
	w.newLine++
	w.hunks = append(w.hunks, domain.DiffHunk{Kind: domain.HunkUnchanged, Text: text, OriginalLineNo: w.oldLine, NewLineNo: w.newLine})
}

func (w *hunkWriter) removed(text string) {
	w.oldLine++
	w.hunks = append(w.hunks, domain.DiffHunk{Kind: domain.HunkRemoved, Text: text, OriginalLineNo: w.oldLine})
}

func (w *hunkWriter) added(text string) {
	w.newLine++
	w.hunks = append(w.hunks, domain.DiffHunk{Kind: domain.HunkAdded, Text: text, NewLineNo: w.newLine})
}

// middle emits the LCS walk over the non-shared region.
func (w *hunkWriter) middle(a, b []string) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		for _, line := range a {
			w.removed(line)
		}
		for _, line := range b {
			w.added(line)
		}
		return
	}

	// lcs[i*(m+1)+j] is the LCS length of a[i:] and b[j:].
	stride := m + 1
	lcs := make([]int32, (n+1)*stride)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i*stride+j] = lcs[(i+1)*stride+j+1] + 1
			} else if down, right := lcs[(i+1)*stride+j], lcs[i*stride+j+1]; down >= right {
				lcs[i*stride+j] = down
			} else {
				lcs[i*stride+j] = right
			}
		}
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			w.unchanged(a[i])
			i++
			j++
		case lcs[(i+1)*stride+j] >= lcs[i*stride+j+1]:
			w.removed(a[i])
			i++
		default:
			w.added(b[j])
			j++
		}
	}
	for ; i < n; i++ {
		w.removed(a[i])
	}
	for ; j < m; j++ {
		w.added(b[j])
	}
}
