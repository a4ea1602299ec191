// Package assets embeds the files huh writes on first run.
package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultGuardrailYAML contains the embedded default guardrail rules.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// BashHook flushes bash history after every prompt.
//
//go:embed hooks/bash.sh
var BashHook string

// ZshHook enables incremental zsh history.
//
//go:embed hooks/zsh.sh
var ZshHook string

// FishHook adds the alias for fish users.
//
//go:embed hooks/fish.fish
var FishHook string
