package factory

import (
	"context"

	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
)

// ExecContext identifies the kind of process a handler is loaded from.
type ExecContext int

const (
	// ContextMain is the host process with access to local models and the
	// filesystem.
	ContextMain ExecContext = iota
	// ContextRenderer is a UI process.
	ContextRenderer
)

// String returns the context name.
func (c ExecContext) String() string {
	switch c {
	case ContextMain:
		return "main"
	case ContextRenderer:
		return "renderer"
	default:
		return "unknown"
	}
}

// ParseExecContext maps "main" and "renderer" to their ExecContext.
func ParseExecContext(s string) (ExecContext, bool) {
	switch s {
	case "", "main":
		return ContextMain, true
	case "renderer":
		return ContextRenderer, true
	default:
		return ContextMain, false
	}
}

// Module is a loaded backend. Its capabilities are discovered by asserting
// the optional interfaces below.
type Module any

// Handler loads a backend module. It is invoked on every dispatch call and
// must be cheap and free of side effects when called repeatedly.
type Handler func(ec ExecContext) Module

// STTCreator is implemented by modules that construct speech-to-text clients.
type STTCreator interface {
	CreateSTT(opts map[string]any) (transcription.Provider, error)
}

// LLMCreator is implemented by modules that construct one-shot LLM clients.
type LLMCreator interface {
	CreateLLM(opts map[string]any) (llm.Provider, error)
}

// StreamingLLMCreator is implemented by modules that construct streaming LLM clients.
type StreamingLLMCreator interface {
	CreateStreamingLLM(opts map[string]any) (llm.StreamingProvider, error)
}

// KeyValidator is implemented by modules that can check an API key.
type KeyValidator interface {
	ValidateAPIKey(ctx context.Context, apiKey string) error
}

// ClientClass is the primary client type a module exports, e.g.
// "OpenAIProvider". Its constructor bypasses dispatch.
type ClientClass = provider.Class

// ClassExporter is implemented by modules that expose their client type by name.
type ClassExporter interface {
	ExportedClass(name string) (ClientClass, bool)
}
