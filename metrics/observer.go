package metrics

import (
	"github.com/aalemi-dev/spanbridge/observability"
)

// Series registered by NewSpanObserver.
const (
	OperationsTotalName   = "spanbridge_operations_total"
	OperationDurationName = "spanbridge_operation_duration_seconds"
	SpanTagsName          = "spanbridge_span_tags"
	BackendReadyName      = "spanbridge_backend_ready"
)

var spanTagBuckets = []float64{0, 1, 2, 4, 8, 16, 32, 64, 128, 256}

// SpanObserver turns component operations into Prometheus series.
type SpanObserver struct {
	operations Counter
	duration   Histogram
	tags       Histogram
	ready      Gauge
}

// NewSpanObserver registers the bridge's series on m and returns an observer
// that updates them. It is safe to call more than once with the same m.
func NewSpanObserver(m MetricsCollector) observability.Observer {
	return &SpanObserver{
		operations: m.CreateCounter(OperationsTotalName,
			"Operations completed by spanbridge components.",
			[]string{"component", "operation", "status"}),
		duration: m.CreateHistogram(OperationDurationName,
			"Time spent per operation.",
			[]string{"component", "operation"}, nil),
		tags: m.CreateHistogram(SpanTagsName,
			"Tags set on each submitted span.",
			nil, spanTagBuckets),
		ready: m.CreateGauge(BackendReadyName,
			"1 while spans reach the trace backend, 0 after a span was dropped.",
			nil),
	}
}

// ObserveOperation implements observability.Observer.
func (o *SpanObserver) ObserveOperation(ctx observability.OperationContext) {
	status := "ok"
	if ctx.Error != nil {
		status = "error"
	}

	o.operations.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.duration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Component != observability.ComponentReceiver {
		return
	}
	switch ctx.Operation {
	case "submit":
		o.tags.Observe(float64(ctx.Size))
		o.ready.Set(1)
	case "drop":
		o.ready.Set(0)
	}
}
