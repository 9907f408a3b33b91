package metrics

// MetricsCollector creates series on the application registry.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// CreateCounter registers a counter vector. Creating the same counter
	// twice returns the registered one.
	//
	//   c := m.CreateCounter("spans_total", "Spans seen.", []string{"component"})
	//   c.WithLabelValues("kafka").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram registers a histogram vector with the given buckets;
	// nil buckets select prometheus.DefBuckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge registers a gauge vector.
	CreateGauge(name, help string, labels []string) Gauge
}
