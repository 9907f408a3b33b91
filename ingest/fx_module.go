package ingest

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/receiver"
	"github.com/aalemi-dev/spanbridge/tracer"
)

// FXModule provides *Server and serves it for the lifetime of the app when
// Config.Enabled is set.
var FXModule = fx.Module("ingest",
	fx.Provide(NewServerWithDI),
	fx.Invoke(RegisterServerLifecycle),
)

// ServerParams groups the dependencies of NewServerWithDI.
type ServerParams struct {
	fx.In

	Config   Config
	Receiver receiver.SpanReceiver
	Backend  tracer.Backend         `optional:"true"`
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewServerWithDI builds a Server from injected dependencies.
func NewServerWithDI(params ServerParams) *Server {
	var opts []Option
	if params.Backend != nil {
		opts = append(opts, WithBackend(params.Backend))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return NewServer(params.Config, params.Receiver, params.Logger, opts...)
}

// RegisterServerLifecycle starts the server on start and shuts it down on
// stop. A bind failure aborts startup.
func RegisterServerLifecycle(lc fx.Lifecycle, srv *Server) {
	if !srv.cfg.Enabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
