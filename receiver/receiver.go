package receiver

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/spanbridge/htrace"
	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/tracer"
)

const (
	OperationSubmit = "submit"
	OperationDrop   = "drop"
)

// Receiver forwards HTrace spans to a tracer.Backend.
//
// A Receiver holds no per-span state and is safe for concurrent use.
type Receiver struct {
	backend  tracer.Backend
	log      logger.Logger
	observer observability.Observer
}

// Option customizes a Receiver.
type Option func(*Receiver)

// WithObserver reports every submitted or dropped span to o.
func WithObserver(o observability.Observer) Option {
	return func(r *Receiver) {
		r.observer = o
	}
}

// New returns a Receiver submitting to backend. A nil log discards output.
func New(backend tracer.Backend, log logger.Logger, opts ...Option) *Receiver {
	if log == nil {
		log = logger.NewNopLogger()
	}

	r := &Receiver{
		backend: backend,
		log:     log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReceiveSpan implements SpanReceiver.
func (r *Receiver) ReceiveSpan(span htrace.Span) {
	r.ReceiveSpanContext(context.Background(), span)
}

// ReceiveSpanContext implements SpanReceiver.
func (r *Receiver) ReceiveSpanContext(ctx context.Context, span htrace.Span) {
	began := time.Now()

	// span is a fmt.Stringer, so its JSON is only built when debug is on.
	r.log.DebugWithContext(ctx, "received span", nil, map[string]interface{}{
		"span": span,
	})

	r.backend.EnsureInitialized(ctx)

	d := Translate(span)

	out, ok := r.backend.StartSpan(ctx, d.SpanStart())
	if !ok {
		r.log.DebugWithContext(ctx, "dropping span", ErrBackendNotReady, map[string]interface{}{
			"description": span.Description,
			"trace_id":    span.TraceID,
			"span_id":     span.SpanID,
			"state":       r.backend.State().String(),
		})
		r.observe(OperationDrop, d, time.Since(began), ErrBackendNotReady)
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(d.Tags))
	for key, value := range d.Tags {
		attrs = append(attrs, value.Attribute(key))
	}
	out.SetAttributes(attrs...)

	for _, entry := range d.Logs {
		out.AddEvent(entry.Message, trace.WithTimestamp(time.UnixMicro(entry.TimeMicros)))
	}

	out.End(trace.WithTimestamp(time.UnixMicro(d.StopMicros)))

	r.observe(OperationSubmit, d, time.Since(began), nil)
}

// Close implements SpanReceiver.
func (r *Receiver) Close() error {
	return nil
}

func (r *Receiver) observe(operation string, d DownstreamSpan, duration time.Duration, err error) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveOperation(observability.OperationContext{
		Component: observability.ComponentReceiver,
		Operation: operation,
		Resource:  d.OperationName,
		Duration:  duration,
		Error:     err,
		Size:      int64(len(d.Tags)),
		Metadata: map[string]interface{}{
			"logs": len(d.Logs),
		},
	})
}
