package kafka

import "context"

// Feed is a running source of spans.
//
// This interface is implemented by the concrete *SpanFeed type.
type Feed interface {
	// Run fetches until ctx is done, GracefulShutdown is called or a
	// permanent error occurs. Only the last case returns a non-nil error.
	Run(ctx context.Context) error

	// GracefulShutdown stops Run and releases the connection.
	GracefulShutdown()
}
