package schema_registry

import (
	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/kafka"
	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
)

// FXModule provides *Client, the Registry interface and a kafka.Decoder
// backed by SpanDecoder, which makes the kafka feed expect registry-framed
// messages. Include it only when Config.Enabled is set.
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    kafka.FXModule,
//	    fx.Supply(schema_registry.Config{URL: "http://registry:8081"}),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			func(c *Client) Registry { return c },
			fx.As(new(Registry)),
		),
		fx.Annotate(
			NewSpanDecoder,
			fx.As(new(kafka.Decoder)),
		),
	),
)

// SchemaRegistryParams groups the dependencies of NewClientWithDI.
type SchemaRegistryParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI builds a Client from injected dependencies.
func NewClientWithDI(params SchemaRegistryParams) (*Client, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	return client.WithLogger(params.Logger).WithObserver(params.Observer), nil
}
