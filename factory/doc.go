// Package factory is the provider registry and dispatch facade of glass.
//
// A provider id such as "openai" or "whisper" maps to a [Provider]
// descriptor: a display name, a [Handler] that loads the backend module on
// demand, and the catalog of LLM and STT [ModelOption]s. The dispatch
// functions resolve the "openai-glass" alias, load the module, strip the
// "-glass" suffix from the requested model, and delegate to the module's
// capability constructor:
//
//	stt, err := factory.CreateSTT("openai-glass", map[string]any{
//	    "api_key": key,
//	    "model":   "gpt-4o-mini-transcribe-glass", // reaches the backend as gpt-4o-mini-transcribe
//	})
//
// Modules advertise capabilities by implementing the optional interfaces
// [STTCreator], [LLMCreator], [StreamingLLMCreator], [KeyValidator], and
// [ClassExporter]. A module lacking one of them simply does not support
// that capability; dispatch reports it the same way as an unknown id.
//
// The default table is [DefaultRegistry]. Use [NewDispatcher] to dispatch against
// another registry or from a renderer process.
package factory
