package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CreateCounter implements MetricsCollector.
func (m *Metrics) CreateCounter(name, help string, labels []string) Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	return &counterVec{vec: m.register(vec).(*prometheus.CounterVec)}
}

// CreateHistogram implements MetricsCollector.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	return &histogramVec{vec: m.register(vec).(*prometheus.HistogramVec)}
}

// CreateGauge implements MetricsCollector.
func (m *Metrics) CreateGauge(name, help string, labels []string) Gauge {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	return &gaugeVec{vec: m.register(vec).(*prometheus.GaugeVec)}
}
