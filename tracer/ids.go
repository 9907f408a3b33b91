package tracer

import (
	"context"
	"encoding/binary"
	"math/rand"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromUint64 widens a 64-bit trace id to OpenTelemetry's 128 bits by
// placing it in the low eight bytes, the same layout Zipkin and Jaeger use
// for 64-bit ids.
func TraceIDFromUint64(id uint64) trace.TraceID {
	var tid trace.TraceID
	binary.BigEndian.PutUint64(tid[8:], id)
	return tid
}

// SpanIDFromUint64 encodes a 64-bit span id big-endian.
func SpanIDFromUint64(id uint64) trace.SpanID {
	var sid trace.SpanID
	binary.BigEndian.PutUint64(sid[:], id)
	return sid
}

// Uint64FromTraceID returns the low 64 bits of a trace id.
func Uint64FromTraceID(tid trace.TraceID) uint64 {
	return binary.BigEndian.Uint64(tid[8:])
}

// Uint64FromSpanID decodes a span id.
func Uint64FromSpanID(sid trace.SpanID) uint64 {
	return binary.BigEndian.Uint64(sid[:])
}

type explicitIDsKey struct{}

type explicitIDs struct {
	traceID trace.TraceID
	spanID  trace.SpanID
}

func contextWithExplicitIDs(ctx context.Context, tid trace.TraceID, sid trace.SpanID) context.Context {
	return context.WithValue(ctx, explicitIDsKey{}, explicitIDs{traceID: tid, spanID: sid})
}

func explicitIDsFromContext(ctx context.Context) (explicitIDs, bool) {
	ids, ok := ctx.Value(explicitIDsKey{}).(explicitIDs)
	return ids, ok
}

// explicitIDGenerator hands the SDK the ids stored in the start context so
// forwarded spans keep their upstream identity. Spans started without
// explicit ids get random ones.
type explicitIDGenerator struct{}

var _ sdktrace.IDGenerator = explicitIDGenerator{}

func (explicitIDGenerator) NewIDs(ctx context.Context) (trace.TraceID, trace.SpanID) {
	if ids, ok := explicitIDsFromContext(ctx); ok {
		return ids.traceID, ids.spanID
	}
	return randomTraceID(), randomSpanID()
}

func (explicitIDGenerator) NewSpanID(ctx context.Context, _ trace.TraceID) trace.SpanID {
	if ids, ok := explicitIDsFromContext(ctx); ok {
		return ids.spanID
	}
	return randomSpanID()
}

func randomTraceID() trace.TraceID {
	var tid trace.TraceID
	for !tid.IsValid() {
		binary.BigEndian.PutUint64(tid[:8], rand.Uint64())
		binary.BigEndian.PutUint64(tid[8:], rand.Uint64())
	}
	return tid
}

func randomSpanID() trace.SpanID {
	var sid trace.SpanID
	for !sid.IsValid() {
		binary.BigEndian.PutUint64(sid[:], rand.Uint64())
	}
	return sid
}
