package ai

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

// ErrMissingAPIKey is returned when a hosted model has no credential.
var ErrMissingAPIKey = errors.New("missing API key")

// Factory builds providers for configured models.
type Factory struct {
	httpClient *http.Client
}

// NewFactory returns a factory sharing one HTTP client across providers.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
	}
}

// NewFactoryWithClient is used by tests to point providers at httptest servers.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

// ForModel implements ports.ProviderFactory.
func (f *Factory) ForModel(model domain.ModelDefinition, apiKey string) (ports.Provider, error) {
	kind := model.Kind()
	if kind.NeedsAPIKey() && apiKey == "" {
		return nil, fmt.Errorf("%w: set %s or pass --api-key", ErrMissingAPIKey, model.APIKeyEnvVar())
	}

	switch kind {
	case domain.ProviderGemini:
		return newHTTPProvider("gemini", model, apiKey, f.httpClient, geminiAdapter()), nil
	case domain.ProviderAnthropic:
		return newHTTPProvider("anthropic", model, apiKey, f.httpClient, anthropicAdapter()), nil
	case domain.ProviderOpenAI, domain.ProviderOllama:
		return newOpenAIProvider(string(kind), model, apiKey, f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", kind)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
