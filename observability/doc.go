// Package observability wires OpenTelemetry tracing and metrics for glass.
//
// [Init] installs OTLP/HTTP trace and metric exporters as the global
// providers; until it is called the otel no-op providers are in effect, so
// spans and instruments created through this package are always safe to use.
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
package observability
