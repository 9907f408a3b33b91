package schema_registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aalemi-dev/spanbridge/htrace"
)

// SpanSubject is the subject the HTrace span schema is registered under by
// producers that use RegisterSpanSchema.
const SpanSubject = "htrace-spans-value"

// SpanSchema is the JSON Schema of an HTrace span as produced by htrace.Span's
// JSON encoding.
const SpanSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "HTraceSpan",
  "type": "object",
  "properties": {
    "i": {"type": "string", "pattern": "^[0-9a-fA-F]{1,16}$"},
    "s": {"type": "string", "pattern": "^[0-9a-fA-F]{1,16}$"},
    "b": {"type": "integer"},
    "e": {"type": "integer"},
    "d": {"type": "string"},
    "r": {"type": "string"},
    "p": {"type": "array", "items": {"type": "string"}},
    "n": {"type": "object", "additionalProperties": {"type": "string"}},
    "t": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {"t": {"type": "integer"}, "m": {"type": "string"}}
      }
    }
  },
  "required": ["i", "s"]
}`

// SpanDecoder reads HTrace JSON spans framed with the Confluent wire format.
// The schema id of every message must resolve in the registry to a JSON
// schema. It satisfies kafka.Decoder.
type SpanDecoder struct {
	registry Registry
}

// NewSpanDecoder returns a decoder resolving schema ids through registry.
func NewSpanDecoder(registry Registry) *SpanDecoder {
	return &SpanDecoder{registry: registry}
}

// Decode strips the wire format header, checks the schema id and decodes
// the payload as a span or an array of spans.
func (d *SpanDecoder) Decode(data []byte) ([]htrace.Span, error) {
	schemaID, payload, err := DecodeSchemaID(data)
	if err != nil {
		return nil, err
	}

	schema, err := d.registry.GetSchemaByID(context.Background(), schemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema %d: %w", schemaID, err)
	}
	if schema.SchemaType() != SchemaTypeJSON {
		return nil, fmt.Errorf("%w: schema %d is %s", ErrUnsupportedSchemaType, schemaID, schema.SchemaType())
	}

	return htrace.DecodeBatch(payload)
}

// RegisterSpanSchema registers SpanSchema under SpanSubject and returns its id.
func RegisterSpanSchema(ctx context.Context, registry Registry) (int, error) {
	return registry.RegisterSchema(ctx, SpanSubject, SpanSchema, SchemaTypeJSON)
}

// EncodeSpans frames spans as a JSON array under schemaID.
func EncodeSpans(schemaID int, spans ...htrace.Span) ([]byte, error) {
	payload, err := json.Marshal(spans)
	if err != nil {
		return nil, fmt.Errorf("failed to encode spans: %w", err)
	}
	return append(EncodeSchemaID(schemaID), payload...), nil
}
