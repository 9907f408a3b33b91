package ingest

import "errors"

var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrBodyTooLarge     = errors.New("request body too large")
	ErrBadPayload       = errors.New("bad span payload")
)
