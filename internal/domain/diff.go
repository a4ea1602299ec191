package domain

import "strings"

// HunkKind classifies one line of a diff.
type HunkKind int

const (
	HunkUnchanged HunkKind = iota
	HunkAdded
	HunkRemoved
)

func (k HunkKind) String() string {
	switch k {
	case HunkAdded:
		return "added"
	case HunkRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// Marker is the single-character prefix used when rendering the line.
func (k HunkKind) Marker() string {
	switch k {
	case HunkAdded:
		return "+"
	case HunkRemoved:
		return "-"
	default:
		return " "
	}
}

// DiffHunk is one line-level unit. Text keeps its line terminator so a diff
// replays byte for byte; line numbers are 1-based and 0 on the side that
// does not apply.
type DiffHunk struct {
	Kind           HunkKind
	Text           string
	OriginalLineNo int
	NewLineNo      int
}

// Line returns the hunk text without its terminator.
func (h DiffHunk) Line() string {
	return strings.TrimRight(h.Text, "\r\n")
}

// Diff is an ordered hunk sequence transforming an original into a proposal.
type Diff struct {
	Hunks []DiffHunk
}

// Original reassembles the original side (Unchanged and Removed hunks).
func (d Diff) Original() string {
	var b strings.Builder
	for _, h := range d.Hunks {
		if h.Kind != HunkAdded {
			b.WriteString(h.Text)
		}
	}
	return b.String()
}

// Proposed reassembles the proposed side (Unchanged and Added hunks).
func (d Diff) Proposed() string {
	var b strings.Builder
	for _, h := range d.Hunks {
		if h.Kind != HunkRemoved {
			b.WriteString(h.Text)
		}
	}
	return b.String()
}

// Additions counts Added hunks.
func (d Diff) Additions() int {
	return d.count(HunkAdded)
}

// Deletions counts Removed hunks.
func (d Diff) Deletions() int {
	return d.count(HunkRemoved)
}

// HasChanges reports whether any hunk differs.
func (d Diff) HasChanges() bool {
	for _, h := range d.Hunks {
		if h.Kind != HunkUnchanged {
			return true
		}
	}
	return false
}

func (d Diff) count(kind HunkKind) int {
	n := 0
	for _, h := range d.Hunks {
		if h.Kind == kind {
			n++
		}
	}
	return n
}

// ChangeSummary is the reviewable digest of a diff.
type ChangeSummary struct {
	Additions  int
	Deletions  int
	Highlights []DiffHunk
	// Remaining is the "and N more changes" count.
	Remaining int
}

// FileEditRequest pairs a target path with its original and proposed content.
type FileEditRequest struct {
	Path            string
	OriginalContent string
	ProposedContent string
	Exists          bool
}
