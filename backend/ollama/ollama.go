// Package ollama is the local Ollama backend: chat completions over the
// HTTP API, plain and NDJSON-streamed, plus model discovery.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
)

const (
	// ProviderName is the registered name for the Ollama provider.
	ProviderName = "ollama"
	// ClassName is the exported client type name.
	ClassName = "OllamaProvider"

	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3"
	defaultTimeout     = 120 * time.Second
)

// Config holds configuration for the Ollama provider.
type Config struct {
	BaseURL     string        `json:"base_url"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Timeout     time.Duration `json:"timeout"`
}

// Provider implements llm.StreamingProvider using Ollama's HTTP API.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ llm.StreamingProvider = (*Provider)(nil)

// NewProvider creates a new Ollama LLM provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOllamaURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOllamaModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, err := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// ConfigFromMap reads a Config from a generic options map. An api_key is
// accepted and ignored.
func ConfigFromMap(cfg map[string]any) Config {
	oc := Config{}
	if v, ok := cfg["base_url"].(string); ok {
		oc.BaseURL = v
	}
	if v, ok := cfg["model"].(string); ok {
		oc.Model = v
	}
	if v, ok := cfg["temperature"].(float64); ok {
		oc.Temperature = v
	}
	if v, ok := cfg["timeout"].(time.Duration); ok {
		oc.Timeout = v
	}
	return oc
}

// Factory returns a provider.Factory that creates Ollama Provider instances
// from a generic config map.
func Factory() provider.Factory[*Provider] {
	return func(cfg map[string]any) (*Provider, error) {
		return NewProvider(ConfigFromMap(cfg))
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Close releases idle connections.
func (p *Provider) Close(ctx context.Context) error { return p.client.Close(ctx) }

// Model returns the configured model.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable checks if the Ollama server is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := p.ListModels(ctx)
	return err == nil
}

// ListModels returns the models installed on the server.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	var resp tagsResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{Method: http.MethodGet, Path: "/api/tags"}, &resp); err != nil {
		return nil, fmt.Errorf("ollama list models: %w", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Complete sends a completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	resp, err := p.chat(ctx, p.buildChatRequest(req, false, nil))
	if err != nil {
		return nil, fmt.Errorf("ollama complete: %w", err)
	}
	return resp.toCompletion(), nil
}

// CompleteStructured sends a completion request with JSON format mode.
// A nil schema requests free-form JSON.
func (p *Provider) CompleteStructured(ctx context.Context, req llm.CompletionRequest, schema any) (*llm.CompletionResponse, error) {
	var format any = "json"
	if schema != nil {
		format = schema
	}
	resp, err := p.chat(ctx, p.buildChatRequest(req, false, format))
	if err != nil {
		return nil, fmt.Errorf("ollama complete structured: %w", err)
	}
	return resp.toCompletion(), nil
}

// Stream sends a completion request and returns a channel of streamed chunks.
func (p *Provider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	stream, err := p.client.DoStream(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/api/chat",
		Body:   p.buildChatRequest(req, true, nil),
	})
	if err != nil {
		return nil, fmt.Errorf("ollama stream: %w", err)
	}
	return llm.PumpNDJSON(ctx, stream.Body, parseStreamLine), nil
}

// ValidateAPIKey ignores the key and reports whether the server is reachable.
func (p *Provider) ValidateAPIKey(ctx context.Context) error {
	if _, err := p.ListModels(ctx); err != nil {
		return errors.New(errors.ErrCodeServiceUnavailable,
			fmt.Sprintf("Ollama is not reachable at %s", p.cfg.BaseURL), http.StatusServiceUnavailable).WithCause(err)
	}
	return nil
}

// --- internal Ollama API types ---

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Format   any                 `json:"format,omitempty"`
	Options  *ollamaOptions      `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string            `json:"model"`
	Message         ollamaChatMessage `json:"message"`
	Done            bool              `json:"done"`
	PromptEvalCount int               `json:"prompt_eval_count,omitempty"`
	EvalCount       int               `json:"eval_count,omitempty"`
	Error           string            `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (r *ollamaChatResponse) toCompletion() *llm.CompletionResponse {
	return &llm.CompletionResponse{
		Content: r.Message.Content,
		Model:   r.Model,
		Usage: llm.Usage{
			PromptTokens:     r.PromptEvalCount,
			CompletionTokens: r.EvalCount,
			TotalTokens:      r.PromptEvalCount + r.EvalCount,
		},
	}
}

// buildChatRequest creates an Ollama API request from a llm.CompletionRequest.
func (p *Provider) buildChatRequest(req llm.CompletionRequest, stream bool, format any) ollamaChatRequest {
	req = req.Resolve(llm.Defaults{Model: p.cfg.Model, Temperature: p.cfg.Temperature})

	turns := req.ChatMessages()
	msgs := make([]ollamaChatMessage, 0, len(turns))
	for _, m := range turns {
		msgs = append(msgs, ollamaChatMessage{Role: m.Role, Content: m.Content})
	}

	out := ollamaChatRequest{Model: req.Model, Messages: msgs, Stream: stream, Format: format}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		out.Options = &ollamaOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}
	return out
}

func (p *Provider) chat(ctx context.Context, req ollamaChatRequest) (*ollamaChatResponse, error) {
	var resp ollamaChatResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{Method: http.MethodPost, Path: "/api/chat", Body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// parseStreamLine decodes one NDJSON chat line.
func parseStreamLine(line []byte) (string, bool, error) {
	var resp ollamaChatResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return "", false, fmt.Errorf("ollama stream: unmarshal chunk: %w", err)
	}
	if resp.Error != "" {
		return "", false, fmt.Errorf("ollama stream: %s", resp.Error)
	}
	return resp.Message.Content, resp.Done, nil
}
