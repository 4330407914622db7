package factory

import (
	"github.com/Surya-sourav/glass/backend/anthropic"
	"github.com/Surya-sourav/glass/backend/deepgram"
	"github.com/Surya-sourav/glass/backend/gemini"
	"github.com/Surya-sourav/glass/backend/ollama"
	"github.com/Surya-sourav/glass/backend/openai"
	"github.com/Surya-sourav/glass/backend/whisper"
)

// DefaultRegistry returns the built-in provider table. The registry is
// read-only; use [Registry.With] to derive a modified table.
func DefaultRegistry() *Registry { return providers }

var providers = NewRegistry(
	Entry{ID: "openai", Provider: Provider{
		Name:      "OpenAI",
		Handler:   openaiModule,
		LLMModels: []ModelOption{{ID: "gpt-4.1", Name: "GPT-4.1"}},
		STTModels: []ModelOption{{ID: "gpt-4o-mini-transcribe", Name: "GPT-4o Mini Transcribe"}},
	}},
	Entry{ID: "openai-glass", Provider: Provider{
		Name:      "OpenAI (Glass)",
		Handler:   openaiModule,
		LLMModels: []ModelOption{{ID: "gpt-4.1-glass", Name: "GPT-4.1 (glass)"}},
		STTModels: []ModelOption{{ID: "gpt-4o-mini-transcribe-glass", Name: "GPT-4o Mini Transcribe (glass)"}},
	}},
	Entry{ID: "gemini", Provider: Provider{
		Name:      "Gemini",
		Handler:   func(ExecContext) Module { return gemini.Module{} },
		LLMModels: []ModelOption{{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"}},
		STTModels: []ModelOption{{ID: "gemini-live-2.5-flash-preview", Name: "Gemini Live 2.5 Flash"}},
	}},
	Entry{ID: "anthropic", Provider: Provider{
		Name:      "Anthropic",
		Handler:   func(ExecContext) Module { return anthropic.Module{} },
		LLMModels: []ModelOption{{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet"}},
		STTModels: []ModelOption{},
	}},
	Entry{ID: "deepgram", Provider: Provider{
		Name:      "Deepgram",
		Handler:   func(ExecContext) Module { return deepgram.Module{} },
		LLMModels: []ModelOption{},
		STTModels: []ModelOption{{ID: "nova-3", Name: "Nova-3 (General)"}},
	}},
	// Ollama models are discovered from the local server at runtime.
	Entry{ID: "ollama", Provider: Provider{
		Name:      "Ollama (Local)",
		Handler:   func(ExecContext) Module { return ollama.Module{} },
		LLMModels: []ModelOption{},
		STTModels: []ModelOption{},
	}},
	Entry{ID: "whisper", Provider: Provider{
		Name:      "Whisper (Local)",
		Handler:   whisperModule,
		LLMModels: []ModelOption{},
		STTModels: []ModelOption{
			{ID: "whisper-tiny", Name: "Whisper Tiny (39M)"},
			{ID: "whisper-base", Name: "Whisper Base (74M)"},
			{ID: "whisper-small", Name: "Whisper Small (244M)"},
			{ID: "whisper-medium", Name: "Whisper Medium (769M)"},
		},
	}},
)

func openaiModule(ExecContext) Module { return openai.Module{} }

// whisperModule serves the local model in the main process only; renderers
// get a stub that refuses to transcribe.
func whisperModule(ec ExecContext) Module {
	if ec == ContextRenderer {
		return whisper.RendererStub{}
	}
	return whisper.Module{}
}
