// Package observability defines the hook spanbridge components use to report
// completed operations.
//
// The receiver reports every span it submits or drops, the kafka feed reports
// fetches, decodes and commits, the HTTP ingest endpoint reports each
// request, and the schema registry client reports its lookups. The metrics package turns these reports into Prometheus series:
//
//	obs := metrics.NewSpanObserver(collector)
//	rcv := receiver.New(backend, log, receiver.WithObserver(obs))
//
// A component given a nil Observer simply skips the call, so tests and
// embedded uses need not wire anything.
package observability
