package schema_registry

import (
	"time"

	"github.com/aalemi-dev/spanbridge/observability"
)

// observeOperation reports a registry call. resource is the subject, or
// "registry" for lookups by id; subResource is the schema id.
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   observability.ComponentSchemaRegistry,
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Metadata:    metadata,
	})
}
