package ai

import (
	"os"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
)

// ResolveAPIKey picks the credential for a model: an explicit override, the
// model's auth_env_var, then the provider's conventional variable.
func ResolveAPIKey(model domain.ModelDefinition, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	return resolveAuth(model.AuthEnvVar, model.Kind().DefaultAuthEnvVar())
}

func resolveAuth(primary string, fallback string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	if fallback == "" {
		return ""
	}
	return os.Getenv(fallback)
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value == 0 {
		return def
	}
	return value
}

// maxTokens prefers the per-request budget and caps it by the model limit.
func maxTokens(model domain.ModelDefinition, req domain.CompletionRequest, def int) int {
	n := valueOrDefaultInt(req.MaxTokens, def)
	if model.MaxTokens > 0 && n > model.MaxTokens {
		n = model.MaxTokens
	}
	return n
}

func truncateBody(body []byte) string {
	const limit = 300
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
