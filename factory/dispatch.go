package factory

import (
	"context"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/logger"
	"github.com/Surya-sourav/glass/transcription"
)

// Capability labels used in unsupported-provider errors.
const (
	CapabilitySTT          = "STT"
	CapabilityLLM          = "LLM"
	CapabilityStreamingLLM = "Streaming LLM"
	CapabilityValidation   = "API key validation"
)

// classNames maps an alias-resolved provider id to the client type its
// module exports.
var classNames = map[string]string{
	"openai":    "OpenAIProvider",
	"anthropic": "AnthropicProvider",
	"gemini":    "GeminiProvider",
	"deepgram":  "DeepgramProvider",
	"ollama":    "OllamaProvider",
	"whisper":   "WhisperProvider",
}

// ClassName returns the exported client type name for a provider id.
func ClassName(id string) (string, bool) {
	name, ok := classNames[resolveAlias(id)]
	return name, ok
}

// Dispatcher resolves provider ids against a registry and delegates client
// construction to the loaded modules. It holds no mutable state and is safe
// for concurrent use when the registry's handlers are.
type Dispatcher struct {
	registry *Registry
	exec     ExecContext
	log      *logger.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExecContext sets the context handlers are loaded with. The default is
// ContextMain.
func WithExecContext(ec ExecContext) Option {
	return func(d *Dispatcher) { d.exec = ec }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// NewDispatcher creates a dispatcher over r.
func NewDispatcher(r *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: r, exec: ContextMain}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// logger resolves the dispatcher's logger at call time so the default
// dispatcher picks up a global logger installed after package init.
func (d *Dispatcher) logger() *logger.Logger {
	if d.log != nil {
		return d.log
	}
	return logger.Get(logger.ComponentFactory)
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// ExecContext returns the context handlers are loaded with.
func (d *Dispatcher) ExecContext() ExecContext { return d.exec }

// load resolves id and invokes its handler. A missing id is reported as an
// unsupported capability, using the id as requested.
func (d *Dispatcher) load(capability, id string) (Module, error) {
	resolved := resolveAlias(id)
	p, ok := d.registry.Lookup(resolved)
	if !ok || p.Handler == nil {
		d.logger().Debug("provider not registered", logger.Fields(
			logger.FieldProvider, id,
			logger.FieldResolved, resolved,
			logger.FieldCapability, capability,
		))
		return nil, errors.UnsupportedProvider(capability, id)
	}
	d.logger().Debug("loading provider module", logger.Fields(
		logger.FieldProvider, id,
		logger.FieldResolved, resolved,
		logger.FieldCapability, capability,
	))
	return p.Handler(d.exec), nil
}

// CreateSTT constructs a speech-to-text client for provider id.
func (d *Dispatcher) CreateSTT(id string, opts map[string]any) (transcription.Provider, error) {
	mod, err := d.load(CapabilitySTT, id)
	if err != nil {
		return nil, err
	}
	c, ok := mod.(STTCreator)
	if !ok {
		return nil, errors.UnsupportedProvider(CapabilitySTT, id)
	}
	return c.CreateSTT(sanitizeOptions(opts))
}

// CreateLLM constructs a one-shot LLM client for provider id.
func (d *Dispatcher) CreateLLM(id string, opts map[string]any) (llm.Provider, error) {
	mod, err := d.load(CapabilityLLM, id)
	if err != nil {
		return nil, err
	}
	c, ok := mod.(LLMCreator)
	if !ok {
		return nil, errors.UnsupportedProvider(CapabilityLLM, id)
	}
	return c.CreateLLM(sanitizeOptions(opts))
}

// CreateStreamingLLM constructs a streaming LLM client for provider id.
func (d *Dispatcher) CreateStreamingLLM(id string, opts map[string]any) (llm.StreamingProvider, error) {
	mod, err := d.load(CapabilityStreamingLLM, id)
	if err != nil {
		return nil, err
	}
	c, ok := mod.(StreamingLLMCreator)
	if !ok {
		return nil, errors.UnsupportedProvider(CapabilityStreamingLLM, id)
	}
	return c.CreateStreamingLLM(sanitizeOptions(opts))
}

// ValidateAPIKey checks apiKey against provider id.
func (d *Dispatcher) ValidateAPIKey(ctx context.Context, id, apiKey string) error {
	mod, err := d.load(CapabilityValidation, id)
	if err != nil {
		return err
	}
	v, ok := mod.(KeyValidator)
	if !ok {
		return errors.UnsupportedProvider(CapabilityValidation, id)
	}
	return v.ValidateAPIKey(ctx, apiKey)
}

// ProviderClass returns the client type exported by provider id's module.
// Unknown ids and ids without a known class report false without loading
// any module.
func (d *Dispatcher) ProviderClass(id string) (ClientClass, bool) {
	p, ok := d.registry.Lookup(id)
	if !ok || p.Handler == nil {
		return ClientClass{}, false
	}
	name, ok := ClassName(id)
	if !ok {
		return ClientClass{}, false
	}
	exp, ok := p.Handler(d.exec).(ClassExporter)
	if !ok {
		return ClientClass{}, false
	}
	return exp.ExportedClass(name)
}

// AvailableProviders lists the STT and LLM capable providers of the
// dispatcher's registry.
func (d *Dispatcher) AvailableProviders() Available {
	return d.registry.Available()
}

var defaultDispatcher = NewDispatcher(providers)

// CreateSTT constructs a speech-to-text client from the default table.
func CreateSTT(id string, opts map[string]any) (transcription.Provider, error) {
	return defaultDispatcher.CreateSTT(id, opts)
}

// CreateLLM constructs a one-shot LLM client from the default table.
func CreateLLM(id string, opts map[string]any) (llm.Provider, error) {
	return defaultDispatcher.CreateLLM(id, opts)
}

// CreateStreamingLLM constructs a streaming LLM client from the default table.
func CreateStreamingLLM(id string, opts map[string]any) (llm.StreamingProvider, error) {
	return defaultDispatcher.CreateStreamingLLM(id, opts)
}

// ValidateAPIKey checks apiKey against a provider from the default table.
func ValidateAPIKey(ctx context.Context, id, apiKey string) error {
	return defaultDispatcher.ValidateAPIKey(ctx, id, apiKey)
}

// ProviderClass returns the client type of a provider from the default table.
func ProviderClass(id string) (ClientClass, bool) {
	return defaultDispatcher.ProviderClass(id)
}
