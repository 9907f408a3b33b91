package receiver

import "errors"

// ErrBackendNotReady is reported to the observer for every span dropped
// because the trace backend is uninitialized or failed. It is never returned
// to the caller.
var ErrBackendNotReady = errors.New("trace backend not ready")
