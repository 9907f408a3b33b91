package tracer

import (
	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/logger"
)

// FXModule provides the process-wide *BackendClient and the Backend
// interface. A tracer.Config must be available in the container; a
// logger.Logger is used when present.
//
// The module registers no lifecycle hooks: the connection is built on the
// first received span and is never torn down by the bridge.
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Supply(tracer.Config{CollectorHost: "collector", CollectorPort: 5150}),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewBackendClientWithDI,
		fx.Annotate(
			func(b *BackendClient) Backend { return b },
			fx.As(new(Backend)),
		),
	),
)

// BackendParams groups the dependencies of NewBackendClientWithDI.
type BackendParams struct {
	fx.In

	Config  Config
	Logger  logger.Logger `optional:"true"`
	Options []Option      `optional:"true"`
}

// NewBackendClientWithDI builds a BackendClient from injected dependencies.
func NewBackendClientWithDI(params BackendParams) *BackendClient {
	return NewBackendClient(params.Config, params.Logger, params.Options...)
}
