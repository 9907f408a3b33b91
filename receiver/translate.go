package receiver

import (
	"github.com/aalemi-dev/spanbridge/htrace"
	"github.com/aalemi-dev/spanbridge/tracer"
)

// DownstreamSpan is an HTrace span reshaped for the trace backend.
type DownstreamSpan struct {
	OperationName string

	TraceID uint64
	SpanID  uint64

	// Parent is nil for a root span.
	Parent *ParentContext

	StartMicros int64
	StopMicros  int64

	Tags map[string]AnnotationValue
	Logs []LogEntry
}

// ParentContext references the parent span.
type ParentContext struct {
	TraceID uint64
	SpanID  uint64
}

// LogEntry is a timestamped message within a span.
type LogEntry struct {
	TimeMicros int64
	Message    string
}

// MillisToMicros converts an HTrace timestamp to the backend's resolution.
func MillisToMicros(ms int64) int64 {
	return ms * 1000
}

// Translate maps span onto the downstream model. It does not validate: a span
// that stops before it starts is translated as it is.
func Translate(span htrace.Span) DownstreamSpan {
	d := DownstreamSpan{
		OperationName: span.Description,
		TraceID:       span.TraceID,
		SpanID:        span.SpanID,
		StartMicros:   MillisToMicros(span.StartMillis),
		StopMicros:    MillisToMicros(span.StopMillis),
		Tags:          make(map[string]AnnotationValue, len(span.KVAnnotations)),
		Logs:          make([]LogEntry, 0, len(span.TimelineAnnotations)),
	}

	// The backend allows a single parent; the rest are dropped.
	if len(span.Parents) > 0 {
		d.Parent = &ParentContext{TraceID: span.TraceID, SpanID: span.Parents[0]}
	}

	for k, v := range span.KVAnnotations {
		d.Tags[k] = Coerce(v)
	}

	for _, ta := range span.TimelineAnnotations {
		d.Logs = append(d.Logs, LogEntry{
			TimeMicros: MillisToMicros(ta.TimeMillis),
			Message:    ta.Message,
		})
	}

	return d
}

// SpanStart returns the backend start parameters for d.
func (d DownstreamSpan) SpanStart() tracer.SpanStart {
	start := tracer.SpanStart{
		Name:        d.OperationName,
		TraceID:     d.TraceID,
		SpanID:      d.SpanID,
		StartMicros: d.StartMicros,
	}
	if d.Parent != nil {
		start.HasParent = true
		start.ParentSpanID = d.Parent.SpanID
	}
	return start
}
