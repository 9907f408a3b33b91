package schema_registry

import "errors"

var (
	ErrMissingURL            = errors.New("schema registry URL is required")
	ErrInvalidWireFormat     = errors.New("invalid schema registry wire format")
	ErrUnsupportedSchemaType = errors.New("unsupported schema type")
)
