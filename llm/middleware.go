package llm

import (
	"context"
	"time"

	"github.com/Surya-sourav/glass/logger"
	"github.com/Surya-sourav/glass/observability"
)

// Middleware decorates a Provider with cross-cutting behavior.
type Middleware func(Provider) Provider

// Chain composes middlewares; the first one is outermost.
//
// Chain(a, b, c)(p) is equivalent to a(b(c(p))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Provider) Provider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithLogging logs provider name, model, duration, and outcome of each Complete call.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Provider) Provider {
		return &loggingProvider{Provider: inner, log: log}
	}
}

type loggingProvider struct {
	Provider
	log *logger.Logger
}

func (l *loggingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := l.Provider.Complete(ctx, req)

	fields := logger.DurationFields("complete", time.Since(start))
	fields[logger.FieldProvider] = l.Name()
	if req.Model != "" {
		fields[logger.FieldModel] = req.Model
	}
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.WithContext(ctx).Error("llm complete failed", fields)
		return nil, err
	}
	fields["total_tokens"] = resp.Usage.TotalTokens
	l.log.WithContext(ctx).Debug("llm complete ok", fields)
	return resp, nil
}

// WithTracing wraps each Complete call in an OpenTelemetry span named
// "{serviceName}.{providerName}.complete".
func WithTracing(serviceName string) Middleware {
	return func(inner Provider) Provider {
		return &tracingProvider{Provider: inner, serviceName: serviceName}
	}
}

type tracingProvider struct {
	Provider
	serviceName string
}

func (t *tracingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, span := observability.StartSpan(ctx, t.serviceName+"."+t.Name()+".complete")
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrServiceName, t.serviceName)
	observability.SetSpanAttribute(ctx, observability.AttrProvider, t.Name())
	if req.Model != "" {
		observability.SetSpanAttribute(ctx, observability.AttrModel, req.Model)
	}

	resp, err := t.Provider.Complete(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return resp, err
}

// WithMetrics records operation count, duration, and errors for Complete calls.
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(inner Provider) Provider {
		return &metricsProvider{Provider: inner, metrics: metrics}
	}
}

type metricsProvider struct {
	Provider
	metrics *observability.Metrics
}

func (m *metricsProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := m.Provider.Complete(ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
		m.metrics.RecordError(ctx, "complete", m.Name())
	}
	m.metrics.RecordOperation(ctx, m.Name(), "complete", status, time.Since(start))
	return resp, err
}
