package observability

import "time"

// Component names reported in OperationContext.Component.
const (
	ComponentReceiver = "receiver"
	ComponentKafka    = "kafka"
	ComponentIngest   = "ingest"

	ComponentSchemaRegistry = "schema_registry"
)

// Observer lets callers watch what spanbridge components do without tying
// those components to a metrics, tracing or logging implementation.
//
// Observers are optional: every component works with a nil Observer.
// Implementations must be safe for concurrent use; the receiver calls
// ObserveOperation from whatever goroutine delivered the span.
type Observer interface {
	// ObserveOperation is called once an operation has completed.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package: "receiver", "kafka", "ingest" or
	// "schema_registry".
	Component string

	// Operation is what happened.
	//   receiver: "submit", "drop"
	//   kafka:    "consume", "decode", "commit"
	//   ingest:   "request"
	//   schema_registry: "get_schema_by_id", "register_schema"
	Operation string

	// Resource is the primary subject: the span description for the
	// receiver, the topic for kafka, the route for ingest.
	Resource string

	// SubResource is optional extra addressing, e.g. the kafka partition.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the operation's error, nil on success.
	Error error

	// Size is the amount of data involved: tags set on a submitted span,
	// message bytes for kafka, spans per request for ingest.
	Size int64

	// Metadata carries anything else worth reporting.
	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
