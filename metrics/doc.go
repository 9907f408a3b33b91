// Package metrics exposes spanbridge's Prometheus endpoints.
//
// Two registries are served on separate listeners so they can be scraped
// with different intervals:
//
//   - system (default :9090): Go runtime, process and build info collectors
//   - application (default :9091): spanbridge's own series
//
// Every series carries a constant "service" label from Config.ServiceName.
//
// NewSpanObserver registers the bridge's series and returns an
// observability.Observer that the receiver, the kafka feed and the ingest
// handler report to:
//
//	spanbridge_operations_total{component,operation,status}
//	spanbridge_operation_duration_seconds{component,operation}
//	spanbridge_span_tags
//	spanbridge_backend_ready
//
// With fx, metrics.FXModule provides the observer and starts both servers.
package metrics
