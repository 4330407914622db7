// Package deepgram is the Deepgram backend: prerecorded speech-to-text and
// API key validation.
package deepgram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

const (
	// ProviderName is the registered name for the Deepgram provider.
	ProviderName = "deepgram"
	// ClassName is the exported client type name.
	ClassName = "DeepgramProvider"

	defaultBaseURL   = "https://api.deepgram.com/v1"
	defaultModel     = "nova-3"
	defaultAudioMIME = "audio/wav"
	defaultTimeout   = 120 * time.Second
)

// Config holds configuration for the Deepgram provider.
type Config struct {
	APIKey   string        `json:"api_key"`
	BaseURL  string        `json:"base_url"`
	Model    string        `json:"model"`
	Language string        `json:"language,omitempty"`
	Timeout  time.Duration `json:"timeout"`
}

// Provider implements transcription.Provider using the /listen endpoint.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a new Deepgram provider.
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
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.TokenAuth(cfg.APIKey),
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
	if v, ok := cfg["language"].(string); ok {
		c.Language = v
	}
	if v, ok := cfg["timeout"].(time.Duration); ok {
		c.Timeout = v
	}
	return c
}

// Factory returns a provider.Factory that creates Deepgram Provider
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
	return p.listProjects(ctx) == nil
}

// Transcribe uploads audio to /listen and returns the first channel's
// transcript with utterance segments.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	audio, err := transcription.LoadAudio(req)
	if err != nil {
		return nil, err
	}

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	query := map[string]string{
		"model":        model,
		"smart_format": "true",
		"punctuate":    "true",
		"utterances":   "true",
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}
	if lang != "" {
		query["language"] = lang
	}
	mime := req.MimeType
	if mime == "" {
		mime = defaultAudioMIME
	}

	var resp listenResponse
	err = p.client.DoJSON(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/listen",
		Query:   query,
		Headers: map[string]string{"Content-Type": mime},
		Body:    audio,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("deepgram transcribe: %w", err)
	}
	return toTranscriptionResponse(&resp, lang), nil
}

// ValidateAPIKey checks the configured key against the projects endpoint.
func (p *Provider) ValidateAPIKey(ctx context.Context) error {
	return httpclient.ToAppError(ProviderName, p.listProjects(ctx))
}

func (p *Provider) listProjects(ctx context.Context) error {
	_, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/projects"})
	return err
}

// --- internal Deepgram API response types ---

type listenResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []struct {
			Start      float64 `json:"start"`
			End        float64 `json:"end"`
			Transcript string  `json:"transcript"`
			Speaker    *int    `json:"speaker"`
		} `json:"utterances"`
	} `json:"results"`
}

func toTranscriptionResponse(resp *listenResponse, lang string) *transcription.TranscriptionResponse {
	out := &transcription.TranscriptionResponse{
		Duration: resp.Metadata.Duration,
		Language: lang,
	}
	if chans := resp.Results.Channels; len(chans) > 0 {
		if len(chans[0].Alternatives) > 0 {
			out.Text = chans[0].Alternatives[0].Transcript
		}
		if chans[0].DetectedLanguage != "" {
			out.Language = chans[0].DetectedLanguage
		}
	}
	for _, u := range resp.Results.Utterances {
		seg := transcription.Segment{Start: u.Start, End: u.End, Text: u.Transcript}
		if u.Speaker != nil {
			seg.Speaker = fmt.Sprintf("speaker_%d", *u.Speaker)
		}
		out.Segments = append(out.Segments, seg)
	}
	return out
}
