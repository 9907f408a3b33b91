package tracer

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Backend is the downstream trace backend as seen by the receiver.
//
// This interface is implemented by the concrete *BackendClient type.
type Backend interface {
	// EnsureInitialized constructs the backend connection if no attempt has
	// been made yet. Concurrent callers block until the one attempt finishes;
	// once it has finished, calls return immediately. Failures are logged,
	// never returned.
	EnsureInitialized(ctx context.Context)

	// State reports where the connection is in its lifecycle.
	State() State

	// Err returns the error that moved the connection to StateFailed, or nil.
	Err() error

	// Reset moves a failed connection back to StateUninitialized so the next
	// EnsureInitialized tries again. It does nothing in any other state.
	Reset()

	// StartSpan starts a downstream span carrying the given upstream identity.
	// It returns false, and no span, when the connection is not ready.
	StartSpan(ctx context.Context, start SpanStart) (trace.Span, bool)
}

// SpanStart describes a downstream span about to be started.
type SpanStart struct {
	// Name is the operation name.
	Name string

	// TraceID and SpanID are the upstream ids, kept verbatim.
	TraceID uint64
	SpanID  uint64

	// ParentSpanID is the parent's span id; used only when HasParent is set.
	ParentSpanID uint64
	HasParent    bool

	// StartMicros is the start time in microseconds since the Unix epoch.
	StartMicros int64
}
