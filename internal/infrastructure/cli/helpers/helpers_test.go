package helpers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/domain"
)

func TestTopTalliesOrdersByCountThenName(t *testing.T) {
	got := TopTallies(map[string]int{"git status": 2, "ls": 3, "cd": 2, "pwd": 1}, 3)
	assert.Equal(t, []Tally{{"ls", 3}, {"cd", 2}, {"git status", 2}}, got)

	assert.Len(t, TopTallies(map[string]int{"a": 1, "b": 1}, 0), 2)
}

func TestCalculateSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, CalculateSuccessRate(0, 0))
	assert.InDelta(t, 75.0, CalculateSuccessRate(3, 4), 0.001)
}

func TestSummarizeHistory(t *testing.T) {
	records := []domain.InvocationRecord{
		{Mode: domain.ModeAnalyze, Model: "gemini-2.0-flash", Suggestion: "git status", Success: true},
		{Mode: domain.ModeQuery, Model: "gemini-2.0-flash", Suggestion: "git status", Success: true},
		{Mode: domain.ModeWriteFile, Model: "claude", Applied: true, Additions: 2, Deletions: 1, Success: true},
		{Mode: domain.ModeWriteFile, Model: "claude", Applied: false, Additions: 5},
		{Mode: domain.ModeAnalyze, Error: "timeout"},
	}
	stats := SummarizeHistory(records)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Successful)
	assert.Equal(t, 2, stats.ByMode["analyze"])
	assert.Equal(t, 2, stats.ByModel["claude"])
	assert.Equal(t, 2, stats.Suggestions["git status"])
	assert.Equal(t, 2, stats.Edits)
	assert.Equal(t, 1, stats.Applied)
	assert.Equal(t, 2, stats.Additions)
	assert.Equal(t, 1, stats.Deletions)
}

type detectOnly struct{ kind domain.ShellKind }

func (d detectOnly) ReadHistory(context.Context, int) ([]domain.HistoryEntry, error) {
	return nil, nil
}

func (d detectOnly) DetectShell(context.Context) domain.ShellKind { return d.kind }

func TestDetermineTargetShells(t *testing.T) {
	ctx := context.Background()

	got, err := DetermineTargetShells(ctx, "", detectOnly{domain.ShellFish})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShellKind{domain.ShellFish}, got)

	got, err = DetermineTargetShells(ctx, "auto", detectOnly{domain.ShellUnknown})
	require.NoError(t, err)
	assert.Equal(t, AllSupportedShells(), got)

	got, err = DetermineTargetShells(ctx, " ZSH ", nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShellKind{domain.ShellZsh}, got)

	_, err = DetermineTargetShells(ctx, "tcsh", nil)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedShell))
}
