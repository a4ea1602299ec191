package helpers

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/doeshing/huh-go/internal/domain"
)

// Tally is a label with its number of occurrences.
type Tally struct {
	Label string
	Count int
}

// TopTallies returns the most frequent labels, most frequent first and ties
// in name order. A non-positive limit returns everything.
func TopTallies(frequency map[string]int, limit int) []Tally {
	tallies := lo.MapToSlice(frequency, func(label string, count int) Tally {
		return Tally{Label: label, Count: count}
	})
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count == tallies[j].Count {
			return tallies[i].Label < tallies[j].Label
		}
		return tallies[i].Count > tallies[j].Count
	})
	if limit > 0 && len(tallies) > limit {
		return tallies[:limit]
	}
	return tallies
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(total) * 100.0
}

// HistoryStats aggregates invocation records for `huh history stats`.
type HistoryStats struct {
	Total       int
	Successful  int
	ByMode      map[string]int
	ByModel     map[string]int
	Suggestions map[string]int
	Edits       int
	Applied     int
	Additions   int
	Deletions   int
}

// SummarizeHistory tallies records by mode, model and suggested command.
func SummarizeHistory(records []domain.InvocationRecord) HistoryStats {
	stats := HistoryStats{
		ByMode:      make(map[string]int),
		ByModel:     make(map[string]int),
		Suggestions: make(map[string]int),
	}
	for _, rec := range records {
		stats.Total++
		if rec.Success {
			stats.Successful++
		}
		stats.ByMode[string(rec.Mode)]++
		if rec.Model != "" {
			stats.ByModel[rec.Model]++
		}
		if s := strings.TrimSpace(rec.Suggestion); s != "" {
			stats.Suggestions[s]++
		}
		if rec.Mode == domain.ModeWriteFile {
			stats.Edits++
			if rec.Applied {
				stats.Applied++
				stats.Additions += rec.Additions
				stats.Deletions += rec.Deletions
			}
		}
	}
	return stats
}
