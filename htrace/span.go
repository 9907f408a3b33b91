package htrace

import (
	"encoding/json"
	"fmt"
)

// Span is one completed HTrace span.
type Span struct {
	// Description names the unit of work; it becomes the operation name.
	Description string

	// TraceID identifies the trace the span belongs to.
	TraceID uint64

	// SpanID identifies the span within the trace.
	SpanID uint64

	// Parents lists the parent span ids. Empty for a root span.
	Parents []uint64

	// StartMillis and StopMillis are milliseconds since the Unix epoch.
	StartMillis int64
	StopMillis  int64

	// ProcessID names the process that produced the span.
	ProcessID string

	// KVAnnotations holds the span's key/value annotations. Values carry no
	// type information.
	KVAnnotations map[string]string

	// TimelineAnnotations holds point-in-time events in the order recorded.
	TimelineAnnotations []TimelineAnnotation
}

// TimelineAnnotation is a timestamped message recorded within a span.
type TimelineAnnotation struct {
	TimeMillis int64
	Message    string
}

// IsRoot reports whether the span has no parents.
func (s Span) IsRoot() bool {
	return len(s.Parents) == 0
}

// DurationMillis returns StopMillis - StartMillis. It is negative for a
// malformed span; nothing here rejects those.
func (s Span) DurationMillis() int64 {
	return s.StopMillis - s.StartMillis
}

// String returns the span's JSON form, falling back to a Go-syntax rendering
// if encoding fails.
func (s Span) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", struct {
			Description string
			TraceID     uint64
			SpanID      uint64
		}{s.Description, s.TraceID, s.SpanID})
	}
	return string(data)
}
