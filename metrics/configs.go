package metrics

// Default listen addresses of the two metrics endpoints.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"

	// DefaultPath is where both endpoints serve the Prometheus exposition.
	DefaultPath = "/metrics"
)

// Config controls the Prometheus endpoints of the bridge.
//
// The system endpoint carries Go runtime and process metrics; the
// application endpoint carries the span counters registered by
// NewSpanObserver. A nil address selects the default, an empty one disables
// the endpoint:
//
//	cfg := metrics.Config{
//	    SystemMetricsAddress:      metrics.Ptr(""), // off
//	    ApplicationMetricsAddress: nil,             // :9091
//	    ServiceName:               "spanbridge",
//	}
type Config struct {
	SystemMetricsAddress      *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// ServiceName is attached to every series as the "service" label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME" default:"spanbridge"`
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}

func resolveAddress(addr *string, def string) string {
	if addr == nil {
		return def
	}
	return *addr
}
