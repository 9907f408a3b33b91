package tracer

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/aalemi-dev/spanbridge/logger"
)

// loggingExporter logs every span before handing it to the next exporter.
// It is installed at VerbosityDebug.
type loggingExporter struct {
	next sdktrace.SpanExporter
	log  logger.Logger
}

func (e *loggingExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		e.log.DebugWithContext(ctx, "exporting span", nil, map[string]interface{}{
			"name":           s.Name(),
			"trace_id":       s.SpanContext().TraceID().String(),
			"span_id":        s.SpanContext().SpanID().String(),
			"parent_span_id": s.Parent().SpanID().String(),
			"attributes":     len(s.Attributes()),
			"events":         len(s.Events()),
			"duration":       s.EndTime().Sub(s.StartTime()),
		})
	}

	err := e.next.ExportSpans(ctx, spans)
	if err != nil {
		e.log.WarnWithContext(ctx, "span export failed", err, map[string]interface{}{
			"spans": len(spans),
		})
	}
	return err
}

func (e *loggingExporter) Shutdown(ctx context.Context) error {
	return e.next.Shutdown(ctx)
}
