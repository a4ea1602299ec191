package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOllamaBaseURL = "http://localhost:11434/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// openAIProvider serves OpenAI and any OpenAI-compatible endpoint, Ollama included.
type openAIProvider struct {
	name   string
	model  domain.ModelDefinition
	client *openai.Client
}

func newOpenAIProvider(name string, model domain.ModelDefinition, apiKey string, httpClient *http.Client) ports.Provider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openAIBaseURL(model)
	cfg.HTTPClient = httpClient
	return &openAIProvider{
		name:   name,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// openAIBaseURL accepts either a base URL or a full chat completions URL.
func openAIBaseURL(model domain.ModelDefinition) string {
	def := defaultOpenAIBaseURL
	if model.Kind() == domain.ProviderOllama {
		def = defaultOllamaBaseURL
	}
	base := strings.TrimRight(valueOrDefault(model.Endpoint, def), "/")
	return strings.TrimSuffix(base, "/chat/completions")
}

func (p *openAIProvider) Name() string {
	return p.name
}

func (p *openAIProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *openAIProvider) Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResponse, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       valueOrDefault(p.model.ModelID, defaultOpenAIModel),
		Messages:    messages,
		MaxTokens:   maxTokens(p.model, req, 1024),
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return domain.CompletionResponse{}, fmt.Errorf("%s: status %d: %s", p.name, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return domain.CompletionResponse{}, fmt.Errorf("%s: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return domain.CompletionResponse{}, fmt.Errorf("%s: no choices in response", p.name)
	}
	return domain.CompletionResponse{Text: resp.Choices[0].Message.Content, Model: p.model.Name}, nil
}
