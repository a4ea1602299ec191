package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

const (
	defaultGeminiEndpoint    = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel    = "claude-3-5-haiku-latest"
)

type httpProvider struct {
	name       string
	model      domain.ModelDefinition
	apiKey     string
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	endpoint      func(model domain.ModelDefinition, apiKey string) string
	buildRequest  func(domain.ModelDefinition, domain.CompletionRequest) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(req *http.Request, apiKey string)
}

func newHTTPProvider(name string, model domain.ModelDefinition, apiKey string, client *http.Client, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		name:       name,
		model:      model,
		apiKey:     apiKey,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *httpProvider) Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResponse, error) {
	requestBody, err := p.adapter.buildRequest(p.model, req)
	if err != nil {
		return domain.CompletionResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.adapter.endpoint(p.model, p.apiKey), bytes.NewReader(requestBody))
	if err != nil {
		return domain.CompletionResponse{}, err
	}
	httpReq.Header.Set("content-type", "application/json")
	p.adapter.setHeaders(httpReq, p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return domain.CompletionResponse{}, p.requestError(err)
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return domain.CompletionResponse{}, err
	}
	if resp.StatusCode >= 400 {
		return domain.CompletionResponse{}, fmt.Errorf("%s: %s: %s", p.name, resp.Status, truncateBody(responseBody.Bytes()))
	}

	content, err := p.adapter.parseResponse(responseBody.Bytes())
	if err != nil {
		return domain.CompletionResponse{}, fmt.Errorf("%s: parse response: %w", p.name, err)
	}
	return domain.CompletionResponse{Text: content, Model: p.model.Name}, nil
}

// requestError keeps context errors visible to errors.Is while hiding the
// request URL, which may carry the API key.
func (p *httpProvider) requestError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", p.name, urlErr.Err)
	}
	return fmt.Errorf("%s: %w", p.name, err)
}

func geminiAdapter() providerAdapter {
	return providerAdapter{
		endpoint:      geminiEndpoint,
		buildRequest:  buildGeminiRequest,
		parseResponse: parseGeminiResponse,
		setHeaders:    func(*http.Request, string) {},
	}
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		endpoint: func(model domain.ModelDefinition, _ string) string {
			return valueOrDefault(model.Endpoint, defaultAnthropicEndpoint)
		},
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func geminiEndpoint(model domain.ModelDefinition, apiKey string) string {
	base := strings.TrimRight(valueOrDefault(model.Endpoint, defaultGeminiEndpoint), "/")
	if !strings.Contains(base, ":generateContent") {
		base = base + "/" + valueOrDefault(model.ModelID, model.Name) + ":generateContent"
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "key=" + url.QueryEscape(apiKey)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

func buildGeminiRequest(model domain.ModelDefinition, req domain.CompletionRequest) ([]byte, error) {
	request := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: maxTokens(model, req, 1024),
			TopP:            req.TopP,
			TopK:            req.TopK,
		},
	}
	if req.System != "" {
		request.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	return json.Marshal(request)
}

func parseGeminiResponse(body []byte) (string, error) {
	var response struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates in response")
	}
	var builder strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	return builder.String(), nil
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	TopK        int                `json:"top_k,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

func buildAnthropicRequest(model domain.ModelDefinition, req domain.CompletionRequest) ([]byte, error) {
	return json.Marshal(anthropicRequest{
		Model:       valueOrDefault(model.ModelID, defaultAnthropicModel),
		MaxTokens:   maxTokens(model, req, 1024),
		System:      req.System,
		Temperature: req.Temperature,
		TopK:        req.TopK,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: []anthropicContent{{Type: "text", Text: req.Prompt}},
		}},
	})
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []anthropicContent `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	var builder strings.Builder
	for _, block := range response.Content {
		if block.Type == "" || block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	if builder.Len() == 0 {
		return "", errors.New("empty content in response")
	}
	return builder.String(), nil
}

func setAnthropicHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
}
