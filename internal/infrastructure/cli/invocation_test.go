package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvocation(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		write bool
		want  Invocation
	}{
		{name: "bare", want: Invocation{Kind: InvokeAnalyze}},
		{name: "query", args: []string{"how", "do", "I", "undo", "a", "commit"}, want: Invocation{Kind: InvokeQuery, Text: "how do I undo a commit"}},
		{name: "file query", args: []string{"@main.go", "what", "does", "it", "do"}, want: Invocation{Kind: InvokeQuery, Path: "main.go", Text: "what does it do"}},
		{name: "file only", args: []string{"@Makefile"}, want: Invocation{Kind: InvokeQuery, Path: "Makefile", Text: "Explain this file."}},
		{name: "lone at sign", args: []string{"@", "hi"}, want: Invocation{Kind: InvokeQuery, Text: "@ hi"}},
		{name: "write", args: []string{"@config.json", "enable", "debug"}, write: true, want: Invocation{Kind: InvokeWrite, Path: "config.json", Text: "enable debug"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInvocation(tc.args, tc.write)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseInvocationWriteErrors(t *testing.T) {
	_, err := ParseInvocation(nil, true)
	assert.ErrorIs(t, err, errWriteNeedsFile)

	_, err = ParseInvocation([]string{"fix", "it"}, true)
	assert.ErrorIs(t, err, errWriteNeedsFile)

	_, err = ParseInvocation([]string{"@main.go"}, true)
	assert.ErrorIs(t, err, errWriteNeedsInstructions)
}
