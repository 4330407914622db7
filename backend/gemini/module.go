package gemini

import (
	"context"

	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

var _ provider.Closeable = (*Provider)(nil)

// Module exposes the Gemini capabilities to the provider registry.
type Module struct {
	// BaseURL is used when the options carry no base_url.
	BaseURL string
}

func (m Module) newProvider(opts map[string]any) (*Provider, error) {
	cfg := ConfigFromMap(opts)
	if cfg.BaseURL == "" {
		cfg.BaseURL = m.BaseURL
	}
	return NewProvider(cfg)
}

// CreateSTT builds an inline-audio transcription client.
func (m Module) CreateSTT(opts map[string]any) (transcription.Provider, error) {
	p, err := m.newProvider(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateLLM builds a generateContent client.
func (m Module) CreateLLM(opts map[string]any) (llm.Provider, error) {
	p, err := m.newProvider(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateStreamingLLM builds a streamGenerateContent client.
func (m Module) CreateStreamingLLM(opts map[string]any) (llm.StreamingProvider, error) {
	p, err := m.newProvider(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ValidateAPIKey checks apiKey against the models endpoint.
func (m Module) ValidateAPIKey(ctx context.Context, apiKey string) error {
	p, err := m.newProvider(map[string]any{"api_key": apiKey})
	if err != nil {
		return err
	}
	return p.ValidateAPIKey(ctx)
}

// ExportedClass returns the Provider type under ClassName.
func (Module) ExportedClass(name string) (provider.Class, bool) {
	if name != ClassName {
		return provider.Class{}, false
	}
	return provider.NewClass(ClassName, Factory()), true
}
