// Package receiver translates HTrace spans into OpenTelemetry spans and
// forwards them to the trace backend.
//
// A Receiver is the single entry point a host application calls once per
// completed span. Every call ensures the backend connection exists, maps the
// span onto the downstream model and submits it before returning. Nothing is
// queued and nothing is returned: when the backend is not ready the span is
// dropped and the drop is logged at debug level.
//
// # Translation
//
// Translate is the pure half of the work and is exported for callers that
// want the downstream form without submitting it:
//
//   - timestamps go from milliseconds to microseconds (x1000)
//   - only the first of several parent ids becomes the parent
//   - every key/value annotation becomes exactly one typed tag
//   - every timeline annotation becomes one log entry, in order
//
// # Annotation values
//
// HTrace annotation values are untyped strings. Coerce picks a type with a
// fixed first-match order:
//
//  1. a base-10 int64 ("42", "-7", "007")
//  2. a float64 as accepted by strconv.ParseFloat ("42.0", "1e3", "NaN",
//     "Infinity", and integers too large for int64)
//  3. "true" in any case
//  4. "false" in any case
//  5. the string itself
//
// # Usage
//
//	backend := tracer.NewBackendClient(cfg, log)
//	r := receiver.New(backend, log)
//
//	r.ReceiveSpan(htrace.Span{
//	    Description: "read-row",
//	    TraceID:     100,
//	    SpanID:      200,
//	    Parents:     []uint64{50},
//	    StartMillis: 1000,
//	    StopMillis:  1500,
//	    KVAnnotations: map[string]string{
//	        "retries": "3",
//	        "cached":  "false",
//	    },
//	    TimelineAnnotations: []htrace.TimelineAnnotation{
//	        {TimeMillis: 1200, Message: "cache-miss"},
//	    },
//	})
//
// With fx, include receiver.FXModule alongside tracer.FXModule and depend on
// receiver.SpanReceiver.
package receiver
