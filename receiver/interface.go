package receiver

import (
	"context"

	"github.com/aalemi-dev/spanbridge/htrace"
)

// SpanReceiver accepts completed HTrace spans from a host application.
//
// This interface is implemented by the concrete *Receiver type.
type SpanReceiver interface {
	// ReceiveSpan translates and forwards span synchronously. It never fails
	// from the caller's point of view.
	ReceiveSpan(span htrace.Span)

	// ReceiveSpanContext is ReceiveSpan with a caller context, used for log
	// correlation and passed to the backend.
	ReceiveSpanContext(ctx context.Context, span htrace.Span)

	// Close releases nothing and always returns nil. The backend connection
	// outlives every receiver.
	Close() error
}
