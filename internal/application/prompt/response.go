package prompt

import (
	"regexp"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
)

var suggestionPattern = regexp.MustCompile("(?im)^[ \\t>*-]*(?:\\d+\\.\\s*)?(?:\\*\\*)?did you mean(?:\\*\\*)?[:\\s`*]*([^`*\\n\\r]+?)[`*\\s]*$")

// ParseAnalysis splits the "Did you mean" suggestion out of a reply.
func ParseAnalysis(reply string) domain.Analysis {
	text := strings.TrimSpace(reply)
	match := suggestionPattern.FindStringSubmatchIndex(text)
	if match == nil {
		return domain.Analysis{Text: text}
	}

	suggestion := strings.TrimSpace(text[match[2]:match[3]])
	rest := strings.TrimSpace(text[:match[0]] + text[match[1]:])
	rest = collapseBlankLines(rest)
	return domain.Analysis{Text: rest, Suggestion: suggestion}
}

// CleanFileContent strips a surrounding markdown fence from a write-mode
// reply and matches the trailing newline convention of original. A new
// file (empty original) ends with a newline.
func CleanFileContent(reply, original string) string {
	content := strings.Trim(reply, "\r\n")
	if strings.HasPrefix(strings.TrimSpace(content), "```") {
		content = strings.TrimSpace(content)
		if idx := strings.IndexByte(content, '\n'); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimRight(content, " \t\r\n"), "```")
	}
	content = strings.Trim(content, "\r\n")
	if content == "" {
		return ""
	}
	if original == "" || strings.HasSuffix(original, "\n") {
		content += "\n"
	}
	return content
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
