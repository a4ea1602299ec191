package terminal

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"

	"github.com/doeshing/huh-go/internal/domain"
)

// historyFormat is the on-disk layout of a history file.
type historyFormat int

const (
	formatPlain historyFormat = iota
	formatZshExtended
	formatFish
)

var zshExtendedLine = regexp.MustCompile(`^: *(\d+):(\d+);(.*)$`)

// selfCommands are invocations of this tool that never count as context.
var selfCommands = map[string]bool{"huh": true, "wut": true, "history": true}

// sniffFormat inspects content rather than trusting the file name, since
// ~/.history is shared between shells.
func sniffFormat(content string) historyFormat {
	if strings.Contains(content, "- cmd: ") {
		return formatFish
	}
	for _, line := range strings.SplitN(content, "\n", 20) {
		if zshExtendedLine.MatchString(line) {
			return formatZshExtended
		}
	}
	return formatPlain
}

// parseHistory returns the entries of a history file in chronological order.
func parseHistory(content string) []domain.HistoryEntry {
	var entries []domain.HistoryEntry
	switch sniffFormat(content) {
	case formatFish:
		entries = parseFish(content)
	case formatZshExtended:
		entries = parseZsh(unmetafy(content))
	default:
		entries = parsePlain(content)
	}

	kept := entries[:0]
	for _, entry := range entries {
		entry.Command = strings.TrimSpace(entry.Command)
		if entry.Command == "" || isSelfInvocation(entry.Command) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// parsePlain handles bash (optionally with "#<epoch>" timestamp lines) and
// plain zsh files.
func parsePlain(content string) []domain.HistoryEntry {
	var entries []domain.HistoryEntry
	var stamp time.Time
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") {
			if secs, err := strconv.ParseInt(line[1:], 10, 64); err == nil {
				stamp = time.Unix(secs, 0)
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, domain.HistoryEntry{Command: line, Timestamp: stamp})
		stamp = time.Time{}
	}
	return entries
}

// parseZsh handles ": <epoch>:<duration>;command" lines where multi-line
// commands continue with a trailing backslash.
func parseZsh(content string) []domain.HistoryEntry {
	var entries []domain.HistoryEntry
	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		match := zshExtendedLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		command := match[3]
		for strings.HasSuffix(command, "\\") && i+1 < len(lines) {
			i++
			command = strings.TrimSuffix(command, "\\") + "\n" + strings.TrimRight(lines[i], "\r")
		}
		entry := domain.HistoryEntry{Command: command}
		if secs, err := strconv.ParseInt(match[1], 10, 64); err == nil {
			entry.Timestamp = time.Unix(secs, 0)
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseFish handles the YAML-like fish_history layout.
func parseFish(content string) []domain.HistoryEntry {
	var entries []domain.HistoryEntry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "- cmd: "):
			command := strings.TrimPrefix(line, "- cmd: ")
			command = strings.NewReplacer(`\\`, `\`, `\n`, "\n").Replace(command)
			entries = append(entries, domain.HistoryEntry{Command: command})
		case strings.HasPrefix(strings.TrimSpace(line), "when: ") && len(entries) > 0:
			value := strings.TrimPrefix(strings.TrimSpace(line), "when: ")
			if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
				entries[len(entries)-1].Timestamp = time.Unix(secs, 0)
			}
		}
	}
	return entries
}

// unmetafy reverses zsh's encoding of bytes >= 0x83 as 0x83 followed by the
// byte xor 0x20.
func unmetafy(content string) string {
	const meta = 0x83
	if strings.IndexByte(content, meta) < 0 {
		return content
	}
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == meta && i+1 < len(content) {
			i++
			out = append(out, content[i]^0x20)
			continue
		}
		out = append(out, content[i])
	}
	return string(out)
}

// isSelfInvocation reports whether command runs this tool or the history
// builtin, looking at the first simple command of the line.
func isSelfInvocation(command string) bool {
	name := firstCommandName(command)
	return selfCommands[name]
}

func firstCommandName(command string) string {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return ""
		}
		return filepath.Base(fields[0])
	}

	var name string
	syntax.Walk(file, func(node syntax.Node) bool {
		if name != "" {
			return false
		}
		if call, ok := node.(*syntax.CallExpr); ok && len(call.Args) > 0 {
			name = filepath.Base(call.Args[0].Lit())
			return false
		}
		return true
	})
	return name
}
