package diff

import "github.com/doeshing/huh-go/internal/domain"

// Summarize counts the changes in d and keeps up to limit changed hunks, in
// diff order, as highlights. Remaining is the exact number of changed lines
// not shown. A negative limit behaves like zero.
func Summarize(d domain.Diff, limit int) domain.ChangeSummary {
	if limit < 0 {
		limit = 0
	}

	summary := domain.ChangeSummary{}
	for _, h := range d.Hunks {
		switch h.Kind {
		case domain.HunkAdded:
			summary.Additions++
		case domain.HunkRemoved:
			summary.Deletions++
		default:
			continue
		}
		if len(summary.Highlights) < limit {
			summary.Highlights = append(summary.Highlights, h)
		}
	}

	if excess := summary.Additions + summary.Deletions - limit; excess > 0 {
		summary.Remaining = excess
	}
	return summary
}
