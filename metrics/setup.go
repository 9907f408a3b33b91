package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns two Prometheus registries, each behind its own HTTP server:
// one for runtime and process collectors, one for the bridge's own series.
//
// Metrics implements the MetricsCollector interface.
type Metrics struct {
	// SystemServer serves SystemRegistry; nil when disabled.
	SystemServer *http.Server

	// ApplicationServer serves ApplicationRegistry; nil when disabled.
	ApplicationServer *http.Server

	SystemRegistry      *prometheus.Registry
	ApplicationRegistry *prometheus.Registry

	// registerer adds the service label to everything registered through
	// CreateCounter, CreateHistogram and CreateGauge.
	registerer prometheus.Registerer
}

// NewMetrics builds the registries and servers described by cfg. Servers are
// not started; RegisterMetricsLifecycle does that under fx.
//
// The application registry always exists, even with its endpoint disabled,
// so collectors can be created unconditionally.
func NewMetrics(cfg Config) *Metrics {
	labels := prometheus.Labels{"service": cfg.ServiceName}
	m := &Metrics{
		ApplicationRegistry: prometheus.NewRegistry(),
	}
	m.registerer = prometheus.WrapRegistererWith(labels, m.ApplicationRegistry)

	if addr := resolveAddress(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		m.SystemRegistry = prometheus.NewRegistry()
		prometheus.WrapRegistererWith(labels, m.SystemRegistry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
		m.SystemServer = newServer(addr, m.SystemRegistry)
	}

	if addr := resolveAddress(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		m.ApplicationServer = newServer(addr, m.ApplicationRegistry)
	}

	return m
}

func newServer(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(DefaultPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// register adds c to the application registry. Registering an identical
// collector twice returns the one already registered.
func (m *Metrics) register(c prometheus.Collector) prometheus.Collector {
	if err := m.registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
