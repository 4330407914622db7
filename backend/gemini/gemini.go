// Package gemini is the Google Gemini backend: generateContent (plain and
// streamed), audio transcription through inline audio parts, and API key
// validation.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

const (
	// ProviderName is the registered name for the Gemini provider.
	ProviderName = "gemini"
	// ClassName is the exported client type name.
	ClassName = "GeminiProvider"

	defaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel     = "gemini-2.5-flash"
	defaultAudioMIME = "audio/wav"
	defaultTimeout   = 60 * time.Second

	transcribePrompt = "Transcribe this audio verbatim. Reply with the transcript only."
)

// Config holds configuration for the Gemini provider.
type Config struct {
	APIKey      string        `json:"api_key"`
	BaseURL     string        `json:"base_url"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// Provider is the Gemini client for LLM and STT requests.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var (
	_ llm.StreamingProvider  = (*Provider)(nil)
	_ transcription.Provider = (*Provider)(nil)
)

// NewProvider creates a new Gemini provider.
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
		Auth:    httpclient.HeaderAuth("x-goog-api-key", cfg.APIKey),
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

// Factory returns a provider.Factory that creates Gemini Provider instances
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

// Complete sends a generateContent request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	model := p.model(req.Model)
	resp, err := p.generate(ctx, model, p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("gemini complete: %w", err)
	}
	return &llm.CompletionResponse{
		Content: resp.text(),
		Model:   firstNonEmpty(resp.ModelVersion, model),
		Usage:   resp.usage(),
	}, nil
}

// Stream sends a streamGenerateContent request and returns a channel of chunks.
func (p *Provider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	stream, err := p.client.DoStream(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/models/" + p.model(req.Model) + ":streamGenerateContent",
		Query:  map[string]string{"alt": "sse"},
		Body:   p.buildRequest(req),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini stream: %w", err)
	}
	return llm.PumpSSE(ctx, stream.Body, parseStreamChunk), nil
}

// Transcribe sends the audio as an inline part and returns the model's
// transcript. Live models only speak the bidirectional protocol, so they are
// served by the default batch model here.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	audio, err := transcription.LoadAudio(req)
	if err != nil {
		return nil, err
	}
	model := p.model(req.Model)
	if strings.Contains(model, "-live-") {
		model = defaultModel
	}

	prompt := transcribePrompt
	if req.Language != "" {
		prompt += " The audio language is " + req.Language + "."
	}
	body := generateRequest{Contents: []content{{
		Role: llm.RoleUser,
		Parts: []part{
			{Text: prompt},
			{InlineData: &inlineData{
				MimeType: firstNonEmpty(req.MimeType, defaultAudioMIME),
				Data:     base64.StdEncoding.EncodeToString(audio),
			}},
		},
	}}}

	resp, err := p.generate(ctx, model, body)
	if err != nil {
		return nil, fmt.Errorf("gemini transcribe: %w", err)
	}
	return &transcription.TranscriptionResponse{
		Text:     strings.TrimSpace(resp.text()),
		Language: req.Language,
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

func (p *Provider) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	var resp generateResponse
	err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/models/" + model + ":generateContent",
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) model(override string) string {
	return firstNonEmpty(override, p.cfg.Model, defaultModel)
}

// --- internal Gemini API types ---

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (r *generateResponse) usage() llm.Usage {
	return llm.Usage{
		PromptTokens:     r.UsageMetadata.PromptTokenCount,
		CompletionTokens: r.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      r.UsageMetadata.TotalTokenCount,
	}
}

func (p *Provider) buildRequest(req llm.CompletionRequest) generateRequest {
	req = req.Resolve(llm.Defaults{Temperature: p.cfg.Temperature, MaxTokens: p.cfg.MaxTokens})
	out := generateRequest{}
	system, turns := req.SplitSystem()
	for _, m := range turns {
		role := llm.RoleUser
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		out.Contents = append(out.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	if system != "" {
		out.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		out.GenerationConfig = &generationConfig{Temperature: req.Temperature, MaxOutputTokens: req.MaxTokens}
	}
	return out
}

// parseStreamChunk decodes one streamed GenerateContentResponse. A finish
// reason on the first candidate ends the stream.
func parseStreamChunk(data []byte) (string, bool, error) {
	var resp generateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("gemini stream: unmarshal chunk: %w", err)
	}
	done := len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != ""
	return resp.text(), done, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
