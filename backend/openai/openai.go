// Package openai is the OpenAI backend: chat completions (plain and
// streamed), audio transcription, and API key validation.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

const (
	// ProviderName is the registered name for the OpenAI provider.
	ProviderName = "openai"
	// ClassName is the exported client type name.
	ClassName = "OpenAIProvider"

	defaultBaseURL  = "https://api.openai.com/v1"
	defaultLLMModel = "gpt-4.1"
	defaultSTTModel = "gpt-4o-mini-transcribe"
	defaultTimeout  = 60 * time.Second
)

// Config holds configuration for the OpenAI provider.
type Config struct {
	APIKey      string        `json:"api_key"`
	BaseURL     string        `json:"base_url"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// Provider is the OpenAI client. It serves both LLM and STT requests; an
// empty Model picks the default for the capability in use.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var (
	_ llm.StreamingProvider  = (*Provider)(nil)
	_ transcription.Provider = (*Provider)(nil)
	_ provider.Provider      = (*Provider)(nil)
)

// NewProvider creates a new OpenAI provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.MissingField("api_key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.APIKey),
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

// Factory returns a provider.Factory that creates OpenAI Provider instances
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

// Model returns the configured model, which may be empty.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable reports whether the API accepts the configured key.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.listModels(ctx) == nil
}

// Complete sends a chat completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	var resp chatResponse
	err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/chat/completions",
		Body:   p.buildChatRequest(req, false),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("openai complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai complete: empty choices")
	}
	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Stream sends a chat completion request and returns a channel of chunks.
func (p *Provider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	stream, err := p.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/chat/completions",
		Headers: map[string]string{"Accept": "text/event-stream"},
		Body:    p.buildChatRequest(req, true),
	})
	if err != nil {
		return nil, fmt.Errorf("openai stream: %w", err)
	}
	return llm.PumpSSE(ctx, stream.Body, parseStreamChunk), nil
}

// Transcribe uploads audio to the transcription endpoint.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	audio, err := transcription.LoadAudio(req)
	if err != nil {
		return nil, err
	}

	model := firstNonEmpty(req.Model, p.cfg.Model, defaultSTTModel)
	fields := map[string]string{"model": model, "response_format": "json"}
	if req.Language != "" {
		fields["language"] = req.Language
	}
	fileName := "audio.wav"
	if req.AudioPath != "" {
		fileName = filepath.Base(req.AudioPath)
	}

	var resp transcriptionResponse
	err = p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/audio/transcriptions",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "file",
				FileName:    fileName,
				ContentType: req.MimeType,
				Data:        audio,
			}},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("openai transcribe: %w", err)
	}

	return &transcription.TranscriptionResponse{
		Text:     resp.Text,
		Language: firstNonEmpty(resp.Language, req.Language),
		Duration: resp.Duration,
	}, nil
}

// ValidateAPIKey checks the configured key against the models endpoint.
func (p *Provider) ValidateAPIKey(ctx context.Context) error {
	return httpclient.ToAppError(ProviderName, p.listModels(ctx))
}

func (p *Provider) listModels(ctx context.Context) error {
	_, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/models"})
	return err
}

// --- internal OpenAI API types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

func (p *Provider) buildChatRequest(req llm.CompletionRequest, stream bool) chatRequest {
	req = req.Resolve(llm.Defaults{
		Model:       firstNonEmpty(p.cfg.Model, defaultLLMModel),
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	})
	turns := req.ChatMessages()
	msgs := make([]chatMessage, 0, len(turns))
	for _, m := range turns {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	return chatRequest{
		Model:       req.Model,
		Messages:    msgs,
		Stream:      stream,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

// parseStreamChunk decodes one chat.completion.chunk payload.
func parseStreamChunk(data []byte) (string, bool, error) {
	if string(data) == "[DONE]" {
		return "", true, nil
	}
	var chunk streamChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", false, fmt.Errorf("openai stream: unmarshal chunk: %w", err)
	}
	if len(chunk.Choices) == 0 {
		return "", false, nil
	}
	return chunk.Choices[0].Delta.Content, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
