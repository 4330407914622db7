package whisper

import (
	"context"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

var _ provider.Closeable = (*Provider)(nil)

// Module exposes local Whisper transcription to the main process.
type Module struct {
	// URL is used when the options carry no url or base_url.
	URL string
}

// CreateSTT builds a sidecar transcription client.
func (m Module) CreateSTT(opts map[string]any) (transcription.Provider, error) {
	cfg := ConfigFromMap(opts)
	if cfg.URL == "" {
		cfg.URL = m.URL
	}
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ValidateAPIKey always succeeds; local models take no key.
func (Module) ValidateAPIKey(context.Context, string) error { return nil }

// ExportedClass returns the Provider type under ClassName.
func (Module) ExportedClass(name string) (provider.Class, bool) {
	if name != ClassName {
		return provider.Class{}, false
	}
	return provider.NewClass(ClassName, Factory()), true
}

// RendererStub stands in for Module outside the main process. It cannot
// transcribe.
type RendererStub struct{}

// CreateSTT always fails with a WRONG_PROCESS error.
func (RendererStub) CreateSTT(map[string]any) (transcription.Provider, error) {
	return nil, errors.WrongProcess("Whisper STT")
}

// ValidateAPIKey always succeeds.
func (RendererStub) ValidateAPIKey(context.Context, string) error { return nil }
