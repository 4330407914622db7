package observability

import (
	"context"
	"errors"
)

// ShutdownFunc flushes and stops exporters.
type ShutdownFunc func(ctx context.Context) error

// Init starts tracing and metrics export when cfg.Enabled is set. The
// returned ShutdownFunc is always non-nil.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
