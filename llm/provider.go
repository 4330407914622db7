package llm

import (
	"context"

	"github.com/Surya-sourav/glass/provider"
)

// Provider is the interface non-streaming LLM clients implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// StreamingProvider is the interface streaming LLM clients implement.
type StreamingProvider interface {
	provider.Provider

	// Stream sends a completion request and returns a channel of chunks.
	// The channel is closed when the stream ends or fails.
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}
