// Package prompt turns assembled context into provider-neutral completion
// requests and parses model replies.
package prompt

import (
	"fmt"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
)

// Parameters are the sampling settings used for one mode.
type Parameters struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
	TopK        int
}

// ModeParameters holds the per-mode defaults.
var ModeParameters = map[domain.Mode]Parameters{
	domain.ModeAnalyze:   {Temperature: 0.1, MaxTokens: 512, TopP: 0.8, TopK: 10},
	domain.ModeQuery:     {Temperature: 0.3, MaxTokens: 1024, TopP: 0.9, TopK: 20},
	domain.ModeWriteFile: {Temperature: 0.2, MaxTokens: 2048, TopP: 0.9, TopK: 20},
}

const (
	analyzeSystem = "You are a terminal assistant. You explain shell command results and fix mistakes."
	querySystem   = "You are a helpful assistant."
	editSystem    = "You are a helpful file editor."
	createSystem  = "You are a helpful file creator."

	analyzeTask = `Provide:
1. Brief analysis (1-2 sentences)
2. Next steps (max 3 numbered items)
3. If typo/error, suggest fix as: Did you mean: ` + "`correct_command`" + `

Be concise.`
)

// Builder renders completion requests. The zero value uses balanced length
// and no extra token ceiling.
type Builder struct {
	ResponseLength  domain.ResponseLength
	MaxOutputTokens int
}

// NewBuilder reads the relevant preferences from cfg.
func NewBuilder(cfg domain.Config) Builder {
	return Builder{
		ResponseLength:  cfg.GetResponseLength(),
		MaxOutputTokens: cfg.GetMaxOutputTokens(),
	}
}

// Build renders an analyze or query request around window.
func (b Builder) Build(window domain.ContextWindow, query string, mode domain.Mode) domain.CompletionRequest {
	var body strings.Builder

	switch mode {
	case domain.ModeQuery:
		body.WriteString("Please answer the following query:\n\n")
		body.WriteString(strings.TrimSpace(query))
		body.WriteString("\n")
		if text := window.Text(); text != "" {
			body.WriteString("\nRecent terminal context, for reference:\n")
			body.WriteString(text)
			if !strings.HasSuffix(text, "\n") {
				body.WriteString("\n")
			}
		}
		return b.request(mode, querySystem, body.String(), true)
	default:
		mode = domain.ModeAnalyze
		body.WriteString("Analyze the last shell command only. Be concise and direct.\n\n")
		if text := window.Text(); text != "" {
			body.WriteString(text)
			if !strings.HasSuffix(text, "\n") {
				body.WriteString("\n")
			}
		}
		if note := strings.TrimSpace(query); note != "" {
			fmt.Fprintf(&body, "\nUser note: %s\n", note)
		}
		body.WriteString("\n")
		body.WriteString(analyzeTask)
		body.WriteString("\n")
		return b.request(mode, analyzeSystem, body.String(), true)
	}
}

// BuildEdit renders a write-mode request asking for the complete new file.
func (b Builder) BuildEdit(edit domain.FileEditRequest, instructions string) domain.CompletionRequest {
	var body strings.Builder
	system := createSystem

	if edit.Exists {
		system = editSystem
		body.WriteString("I need you to edit the following file based on my instructions.\n\n")
		fmt.Fprintf(&body, "File path: %s\n\n", edit.Path)
		body.WriteString("Current file content:\n```\n")
		body.WriteString(edit.OriginalContent)
		if !strings.HasSuffix(edit.OriginalContent, "\n") {
			body.WriteString("\n")
		}
		body.WriteString("```\n\n")
		fmt.Fprintf(&body, "Instructions: %s\n\n", strings.TrimSpace(instructions))
		body.WriteString("Please provide the complete updated file content. Only output the file content, no explanations or markdown formatting.\n")
	} else {
		body.WriteString("I need you to create a new file based on my instructions.\n\n")
		fmt.Fprintf(&body, "File path: %s\n\n", edit.Path)
		fmt.Fprintf(&body, "Instructions: %s\n\n", strings.TrimSpace(instructions))
		body.WriteString("Please provide the complete file content that should be written to this file. Only output the file content, no explanations or markdown formatting.\n")
	}

	return b.request(domain.ModeWriteFile, system, body.String(), false)
}

func (b Builder) request(mode domain.Mode, system, body string, withLength bool) domain.CompletionRequest {
	params := ModeParameters[mode]
	if withLength {
		body += "\n" + b.ResponseLength.Instruction() + "\n"
	}
	maxTokens := params.MaxTokens
	if b.MaxOutputTokens > 0 && b.MaxOutputTokens < maxTokens {
		maxTokens = b.MaxOutputTokens
	}
	return domain.CompletionRequest{
		Mode:        mode,
		System:      system,
		Prompt:      body,
		Temperature: params.Temperature,
		TopP:        params.TopP,
		TopK:        params.TopK,
		MaxTokens:   maxTokens,
	}
}

// WithFile appends a file's content to a freeform query.
func WithFile(query, path, content string) string {
	var body strings.Builder
	body.WriteString(strings.TrimSpace(query))
	fmt.Fprintf(&body, "\n\nContent of %s:\n```\n", path)
	body.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		body.WriteString("\n")
	}
	body.WriteString("```")
	return body.String()
}
