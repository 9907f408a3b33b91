// Package tracer owns the connection to the downstream trace backend.
//
// A BackendClient is created cheaply from a Config and connected lazily: the
// first EnsureInitialized call builds an OpenTelemetry TracerProvider that
// exports over OTLP/HTTP to the configured collector and registers it as the
// global provider. Concurrent first callers block on a mutex while that
// single attempt runs; every later call is one atomic load.
//
// # States
//
//	Uninitialized -> Initializing -> Ready
//	                              -> Failed
//
// Failed is terminal: the error is logged, kept in Err, and no further
// attempt is made until Reset is called. Nothing is ever returned to the
// caller, so a misconfigured collector degrades the bridge to dropping spans
// instead of disturbing the host application.
//
// # Forwarded spans
//
// StartSpan creates a span that keeps the upstream identity: a custom
// IDGenerator hands the SDK the exact trace and span ids (64-bit ids occupy
// the low half of the 128-bit trace id), and the first upstream parent is
// installed as a remote parent span context. Spans are exported
// synchronously as they end (no batching).
//
// # Verbosity
//
//	0  initialization failures only
//	1+ every SDK export error
//	4+ every exported span, at debug level
//
// # Usage
//
//	backend := tracer.NewBackendClient(cfg, log)
//	backend.EnsureInitialized(ctx)
//
//	span, ok := backend.StartSpan(ctx, tracer.SpanStart{
//		Name:         "read-row",
//		TraceID:      100,
//		SpanID:       200,
//		ParentSpanID: 50,
//		HasParent:    true,
//		StartMicros:  1_000_000,
//	})
//	if ok {
//		span.End(trace.WithTimestamp(time.UnixMicro(1_500_000)))
//	}
package tracer
