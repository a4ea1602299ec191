package cli

import (
	"errors"
	"strings"
)

// InvocationKind is what the positional arguments ask for.
type InvocationKind int

const (
	// InvokeAnalyze explains the last command.
	InvokeAnalyze InvocationKind = iota
	// InvokeQuery answers a freeform question, optionally about a file.
	InvokeQuery
	// InvokeWrite edits a file.
	InvokeWrite
)

const writeUsage = "huh -w @<file> <instructions>"

var (
	errWriteNeedsFile         = errors.New("write mode requires a file path starting with @. Usage: " + writeUsage)
	errWriteNeedsInstructions = errors.New("write mode requires instructions. Usage: " + writeUsage)
)

// Invocation is the parsed positional command line.
type Invocation struct {
	Kind InvocationKind
	Path string
	Text string
}

// ParseInvocation interprets the positional arguments. A leading @path
// names a file; with write set it is the file to edit.
func ParseInvocation(args []string, write bool) (Invocation, error) {
	var path string
	if len(args) > 0 && strings.HasPrefix(args[0], "@") && len(args[0]) > 1 {
		path = args[0][1:]
		args = args[1:]
	}
	text := strings.TrimSpace(strings.Join(args, " "))

	if write {
		if path == "" {
			return Invocation{}, errWriteNeedsFile
		}
		if text == "" {
			return Invocation{}, errWriteNeedsInstructions
		}
		return Invocation{Kind: InvokeWrite, Path: path, Text: text}, nil
	}
	if path == "" && text == "" {
		return Invocation{Kind: InvokeAnalyze}, nil
	}
	if text == "" {
		text = "Explain this file."
	}
	return Invocation{Kind: InvokeQuery, Path: path, Text: text}, nil
}
