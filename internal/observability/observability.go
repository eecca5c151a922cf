// Package observability defines the logging, metrics and tracing hooks the
// board store reports through, plus process-local and Prometheus exporters.
package observability

import (
	"context"
	"time"
)

// Logger is the structured logger accepted by the store and adapters.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsRecorder observes the outcome and latency of one operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens a span per operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is closed exactly once with the operation's error, if any.
type TraceSpan interface {
	End(err error)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}
func (noopLogger) Error(string, ...any) {}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

type noopSpan struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

func (noopSpan) End(error) {}

// NopLogger discards everything.
func NopLogger() Logger { return noopLogger{} }

// NopMetrics discards observations.
func NopMetrics() MetricsRecorder { return noopMetrics{} }

// NopTracer returns spans that do nothing.
func NopTracer() Tracer { return noopTracer{} }

// Instrument runs fn inside a span and reports its outcome to metrics.
func Instrument(ctx context.Context, tracer Tracer, metrics MetricsRecorder, operation string, fn func(context.Context) error) error {
	started := time.Now()
	ctx, span := tracer.Start(ctx, operation)
	err := fn(ctx)
	span.End(err)
	metrics.Observe(ctx, operation, err == nil, time.Since(started))
	return err
}
