// Package domain defines core business entities and value objects for huh.
//
// This file contains model and provider definitions used throughout the application.
// The domain layer is independent of infrastructure concerns.
package domain

import "strings"

// ProviderKind selects the wire protocol used to reach a model.
type ProviderKind string

const (
	ProviderGemini    ProviderKind = "gemini"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderOpenAI    ProviderKind = "openai"
	ProviderOllama    ProviderKind = "ollama"
)

// ModelDefinition describes a completion endpoint declared in the config file.
type ModelDefinition struct {
	Name       string       `yaml:"name"`
	Provider   ProviderKind `yaml:"provider,omitempty"`
	Endpoint   string       `yaml:"endpoint"`
	AuthEnvVar string       `yaml:"auth_env_var"`
	ModelID    string       `yaml:"model_id"`
	MaxTokens  int          `yaml:"max_tokens"`
}

// Kind returns the declared provider, inferring it from the endpoint when absent.
func (m ModelDefinition) Kind() ProviderKind {
	if m.Provider != "" {
		return ProviderKind(strings.ToLower(string(m.Provider)))
	}
	endpoint := strings.ToLower(m.Endpoint)
	switch {
	case strings.Contains(endpoint, "generativelanguage.googleapis.com"):
		return ProviderGemini
	case strings.Contains(endpoint, "anthropic"):
		return ProviderAnthropic
	case strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "ollama"):
		return ProviderOllama
	case strings.HasPrefix(strings.ToLower(m.ModelID), "gemini"):
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}

// DefaultAuthEnvVar names the conventional API key variable for a provider.
func (k ProviderKind) DefaultAuthEnvVar() string {
	switch k {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// NeedsAPIKey reports whether requests must carry a credential.
func (k ProviderKind) NeedsAPIKey() bool {
	return k != ProviderOllama
}

// APIKeyEnvVar returns the variable consulted for this model's credential.
func (m ModelDefinition) APIKeyEnvVar() string {
	if m.AuthEnvVar != "" {
		return m.AuthEnvVar
	}
	return m.Kind().DefaultAuthEnvVar()
}
