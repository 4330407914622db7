// Package anthropic is the Anthropic backend: the messages API, plain and
// streamed, plus API key validation. Anthropic offers no speech-to-text.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
)

const (
	// ProviderName is the registered name for the Anthropic provider.
	ProviderName = "anthropic"
	// ClassName is the exported client type name.
	ClassName = "AnthropicProvider"

	// APIVersion is sent in the anthropic-version header.
	APIVersion = "2023-06-01"

	defaultBaseURL   = "https://api.anthropic.com/v1"
	defaultModel     = "claude-3-5-sonnet-20241022"
	defaultMaxTokens = 4096
	defaultTimeout   = 60 * time.Second
)

// Config holds configuration for the Anthropic provider.
type Config struct {
	APIKey      string        `json:"api_key"`
	BaseURL     string        `json:"base_url"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// Provider implements llm.StreamingProvider using the messages API.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ llm.StreamingProvider = (*Provider)(nil)

// NewProvider creates a new Anthropic provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.MissingField("api_key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.HeaderAuth("x-api-key", cfg.APIKey),
		Headers: map[string]string{"anthropic-version": APIVersion},
		Retry:   httpclient.DefaultRetryConfig(),
	})
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// ConfigFromMap reads a Config from a generic options map.
func ConfigFromMap(cfg map[string]any) Config {
	c := Config{}
	if v, ok := cfg["api_key"].(string); ok {
		c.APIKey = v
	}
	if v, ok := cfg["base_url"].(string); ok {
		c.BaseURL = v
	}
	if v, ok := cfg["model"].(string); ok {
		c.Model = v
	}
	if v, ok := cfg["temperature"].(float64); ok {
		c.Temperature = v
	}
	switch v := cfg["max_tokens"].(type) {
	case int:
		c.MaxTokens = v
	case float64:
		c.MaxTokens = int(v)
	}
	if v, ok := cfg["timeout"].(time.Duration); ok {
		c.Timeout = v
	}
	return c
}

// Factory returns a provider.Factory that creates Anthropic Provider
// instances from a generic config map.
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

// IsAvailable reports whether the API accepts the configured key.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.listModels(ctx) == nil
}

// Complete sends a messages request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	var resp messagesResponse
	err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/messages",
		Body:   p.buildRequest(req, false),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("anthropic complete: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return &llm.CompletionResponse{
		Content: sb.String(),
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// Stream sends a streaming messages request and returns a channel of chunks.
func (p *Provider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	stream, err := p.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/messages",
		Headers: map[string]string{"Accept": "text/event-stream"},
		Body:    p.buildRequest(req, true),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic stream: %w", err)
	}
	return llm.PumpSSE(ctx, stream.Body, parseStreamEvent), nil
}

// ValidateAPIKey checks the configured key against the models endpoint.
func (p *Provider) ValidateAPIKey(ctx context.Context) error {
	return httpclient.ToAppError(ProviderName, p.listModels(ctx))
}

func (p *Provider) listModels(ctx context.Context) error {
	_, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/models"})
	return err
}

// --- internal Anthropic API types ---

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

type messagesResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type streamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) buildRequest(req llm.CompletionRequest, stream bool) messagesRequest {
	req = req.Resolve(llm.Defaults{Model: p.cfg.Model, Temperature: p.cfg.Temperature, MaxTokens: p.cfg.MaxTokens})
	// The messages API takes the system prompt as a top-level field.
	system, turns := req.SplitSystem()
	msgs := make([]message, 0, len(turns))
	for _, m := range turns {
		msgs = append(msgs, message{Role: m.Role, Content: m.Content})
	}

	return messagesRequest{
		Model:       req.Model,
		System:      system,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      stream,
	}
}

// parseStreamEvent decodes one messages stream event.
func parseStreamEvent(data []byte) (string, bool, error) {
	var ev streamEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", false, fmt.Errorf("anthropic stream: unmarshal event: %w", err)
	}
	switch ev.Type {
	case "content_block_delta":
		if ev.Delta.Type == "text_delta" {
			return ev.Delta.Text, false, nil
		}
	case "message_stop":
		return "", true, nil
	case "error":
		if ev.Error != nil {
			return "", false, fmt.Errorf("anthropic stream: %s: %s", ev.Error.Type, ev.Error.Message)
		}
		return "", false, fmt.Errorf("anthropic stream: error event")
	}
	return "", false, nil
}
