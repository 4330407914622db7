package ollama

import (
	"context"

	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
)

var _ provider.Closeable = (*Provider)(nil)

// Module exposes the Ollama capabilities to the provider registry.
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

// CreateLLM builds a local chat client.
func (m Module) CreateLLM(opts map[string]any) (llm.Provider, error) {
	p, err := m.newProvider(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateStreamingLLM builds a local streaming chat client.
func (m Module) CreateStreamingLLM(opts map[string]any) (llm.StreamingProvider, error) {
	p, err := m.newProvider(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ValidateAPIKey reports whether the local server is reachable; Ollama
// takes no key.
func (m Module) ValidateAPIKey(ctx context.Context, _ string) error {
	p, err := m.newProvider(nil)
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
