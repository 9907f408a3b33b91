package schema_registry

import "context"

// Registry is the part of the Confluent Schema Registry API the bridge uses.
//
// This interface is implemented by the concrete *Client type.
type Registry interface {
	// GetSchemaByID returns the schema registered under id.
	GetSchemaByID(ctx context.Context, id int) (*Schema, error)

	// RegisterSchema registers schema under subject and returns its id.
	// Registering an identical schema again returns the existing id.
	RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error)
}

// Schema is a registered schema.
type Schema struct {
	ID     int    `json:"id,omitempty"`
	Schema string `json:"schema"`

	// Type is "AVRO", "PROTOBUF" or "JSON". The registry omits it for Avro.
	Type string `json:"schemaType,omitempty"`
}

// SchemaType returns Type, or "AVRO" when the registry left it empty.
func (s Schema) SchemaType() string {
	if s.Type == "" {
		return SchemaTypeAvro
	}
	return s.Type
}

// Schema types known to the registry.
const (
	SchemaTypeAvro     = "AVRO"
	SchemaTypeProtobuf = "PROTOBUF"
	SchemaTypeJSON     = "JSON"
)
