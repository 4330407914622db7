// Package llm defines the provider-agnostic LLM contract used by glass.
//
// Backends under backend/ implement [Provider] (one-shot completion) and
// usually [StreamingProvider] (chunked completion). The factory package
// hands out values of these types; callers never see the concrete backend.
//
// # Streaming
//
// Streaming backends turn their HTTP body into a channel with [PumpSSE] or
// [PumpNDJSON], supplying a [ChunkParser] for the provider's wire format.
// The channel is closed when the stream ends; errors arrive as a chunk with
// Err set.
//
// # Middleware
//
// [WithLogging], [WithTracing], and [WithMetrics] decorate any Provider:
//
//	p = llm.Chain(llm.WithLogging(log), llm.WithTracing("glass"))(p)
package llm
