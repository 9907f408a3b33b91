package tracer

import "errors"

var (
	// ErrInvalidAddress means the collector host or port cannot form a URL.
	ErrInvalidAddress = errors.New("invalid collector address")

	// ErrInvalidProtocol means the collector protocol is neither http nor https.
	ErrInvalidProtocol = errors.New("invalid collector protocol")
)
