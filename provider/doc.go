// Package provider defines the base contract shared by every backend client
// in glass: a name, an availability probe, and the generic factory signature
// that builds a client from a loose config map.
//
// Capability-specific contracts (LLM completion, transcription) embed
// [Provider] and live in their own packages.
//
//	var f provider.Factory[llm.Provider] = func(cfg map[string]any) (llm.Provider, error) {
//	    return ollama.NewProvider(ollama.Config{Model: cfg["model"].(string)}), nil
//	}
package provider
