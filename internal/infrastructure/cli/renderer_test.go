package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"

	"github.com/doeshing/huh-go/internal/application/assist"
	"github.com/doeshing/huh-go/internal/application/diff"
	"github.com/doeshing/huh-go/internal/domain"
)

func plainRenderer(width int) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := domain.Config{Display: domain.DisplaySettings{MaxLineWidth: width, Color: true}}
	return NewRenderer(&buf, cfg), &buf
}

func TestProposalSummary(t *testing.T) {
	r, buf := plainRenderer(100)
	d := diff.Compute(`{"port": 5432}`, "{\"port\": 5432,\n\"debug\": true}")
	r.Proposal(assist.EditProposal{Path: "config.json", Exists: true, Diff: d, Summary: diff.Summarize(d, 8)})

	want := strings.Join([]string{
		"Proposed changes to config.json",
		"2 additions (+), 1 deletions (-)",
		`- {"port": 5432}`,
		`+ {"port": 5432,`,
		`+ "debug": true}`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestProposalRemainderAndClipping(t *testing.T) {
	r, buf := plainRenderer(12)
	d := diff.Compute("", "a very long first line\nb\nc\n")
	r.Proposal(assist.EditProposal{Path: "new.txt", Diff: d, Summary: diff.Summarize(d, 2)})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "Creating new file: new.txt", lines[0])
	assert.Equal(t, "+ a very lo…", lines[2])
	assert.Equal(t, "+ b", lines[3])
	assert.Equal(t, "… and 1 more changes", lines[4])
}

func TestProposalNoChanges(t *testing.T) {
	r, buf := plainRenderer(80)
	d := diff.Compute("same\n", "same\n")
	r.Proposal(assist.EditProposal{Path: "f.txt", Exists: true, Diff: d, Summary: diff.Summarize(d, 8)})
	assert.Equal(t, "Proposed changes to f.txt\nNo changes needed\n", buf.String())
}

func TestAnswerShowsSuggestionAndRisk(t *testing.T) {
	r, buf := plainRenderer(80)
	r.Answer(assist.Answer{
		Warnings: []string{"shell history unavailable"},
		Analysis: domain.Analysis{
			Text:       "The command removed everything.",
			Suggestion: "rm -rf /",
			Risk: &domain.RiskAssessment{
				Level:   domain.RiskCritical,
				Action:  domain.ActionBlock,
				Reasons: []string{"recursive delete of root"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "warning: shell history unavailable\n")
	assert.Contains(t, out, "The command removed everything.\n")
	assert.Contains(t, out, "Did you mean: rm -rf /\n")
	assert.Contains(t, out, "Risk: CRITICAL (block)\n  - recursive delete of root\n")
}

func TestAnswerWrapsText(t *testing.T) {
	r, buf := plainRenderer(20)
	r.Answer(assist.Answer{Analysis: domain.Analysis{Text: "one two three four five six seven"}})
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

const markdownAnswer = "The build **failed**.\n\n```go\nfmt.Println(\"hi\")\n```\n"

func TestAnswerPlainKeepsMarkdownSource(t *testing.T) {
	r, buf := plainRenderer(80)
	r.Answer(assist.Answer{Analysis: domain.Analysis{Text: markdownAnswer}})

	out := buf.String()
	assert.Contains(t, out, "The build **failed**.")
	assert.Contains(t, out, "```go\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestAnswerStyledRendersMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{out: &buf, color: true, width: 60, mdStyle: glamour.WithStandardStyle("dark")}
	r.Answer(assist.Answer{Analysis: domain.Analysis{Text: markdownAnswer}})

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Println")
	assert.NotContains(t, out, "**failed**")
	assert.NotContains(t, out, "```")
}
