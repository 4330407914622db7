// Package whisper is the local Whisper backend. Transcription runs in a
// faster-whisper HTTP sidecar owned by the main process; renderer processes
// get [RendererStub].
package whisper

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

const (
	// ProviderName is the registered name for the Whisper provider.
	ProviderName = "whisper"
	// ClassName is the exported client type name.
	ClassName = "WhisperProvider"

	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "base"
	defaultWhisperTimeout = 120 * time.Second

	modelPrefix = "whisper-"
)

// Config holds configuration for the Whisper transcription provider.
type Config struct {
	URL         string        `json:"url" yaml:"url"`
	Model       string        `json:"model" yaml:"model"`
	Language    string        `json:"language,omitempty" yaml:"language"`
	Device      string        `json:"device,omitempty" yaml:"device"`
	ComputeType string        `json:"compute_type,omitempty" yaml:"compute_type"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements transcription.Provider using a faster-whisper HTTP sidecar.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a new Whisper transcription provider. Catalog ids
// such as "whisper-tiny" are mapped to the sidecar's model names.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.URL == "" {
		cfg.URL = defaultWhisperURL
	}
	cfg.Model = SidecarModel(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultWhisperTimeout
	}
	client, err := httpclient.New(httpclient.Config{BaseURL: cfg.URL, Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// SidecarModel maps a catalog model id ("whisper-small") to the sidecar's
// model name ("small"). Other values are returned unchanged.
func SidecarModel(id string) string {
	return strings.TrimPrefix(id, modelPrefix)
}

// ConfigFromMap reads a Config from a generic options map. Both "url" and
// "base_url" name the sidecar address.
func ConfigFromMap(cfg map[string]any) Config {
	wc := Config{}
	if v, ok := cfg["base_url"].(string); ok {
		wc.URL = v
	}
	if v, ok := cfg["url"].(string); ok {
		wc.URL = v
	}
	if v, ok := cfg["model"].(string); ok {
		wc.Model = v
	}
	if v, ok := cfg["language"].(string); ok {
		wc.Language = v
	}
	if v, ok := cfg["device"].(string); ok {
		wc.Device = v
	}
	if v, ok := cfg["compute_type"].(string); ok {
		wc.ComputeType = v
	}
	if v, ok := cfg["timeout"].(time.Duration); ok {
		wc.Timeout = v
	}
	return wc
}

// Factory returns a provider.Factory that creates Whisper Provider
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

// Model returns the sidecar model name.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable checks if the Whisper sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil
}

// Transcribe sends audio to the Whisper sidecar and returns the transcription.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	audio, err := transcription.LoadAudio(req)
	if err != nil {
		return nil, err
	}

	model := p.cfg.Model
	if req.Model != "" {
		model = SidecarModel(req.Model)
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	fields := map[string]string{"model": model}
	if lang != "" {
		fields["language"] = lang
	}
	if p.cfg.Device != "" {
		fields["device"] = p.cfg.Device
	}
	if p.cfg.ComputeType != "" {
		fields["compute_type"] = p.cfg.ComputeType
	}
	fileName := "audio.wav"
	if req.AudioPath != "" {
		fileName = filepath.Base(req.AudioPath)
	}

	var result whisperResponse
	err = p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files:  []httpclient.FileField{{FieldName: "audio", FileName: fileName, ContentType: req.MimeType, Data: audio}},
		},
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}
	return toTranscriptionResponse(&result), nil
}

// --- internal Whisper API response types ---

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func toTranscriptionResponse(resp *whisperResponse) *transcription.TranscriptionResponse {
	segments := make([]transcription.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = transcription.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
	}

	var duration float64
	if len(resp.Segments) > 0 {
		duration = resp.Segments[len(resp.Segments)-1].End
	}

	return &transcription.TranscriptionResponse{
		Text:     resp.Text,
		Segments: segments,
		Duration: duration,
		Language: resp.Language,
	}
}
