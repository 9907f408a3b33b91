package receiver

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/tracer"
)

// FXModule provides *Receiver and the SpanReceiver interface. It needs a
// tracer.Backend, normally from tracer.FXModule.
var FXModule = fx.Module("receiver",
	fx.Provide(
		NewWithDI,
		fx.Annotate(
			func(r *Receiver) SpanReceiver { return r },
			fx.As(new(SpanReceiver)),
		),
	),
	fx.Invoke(RegisterReceiverLifecycle),
)

// ReceiverParams groups the dependencies of NewWithDI.
type ReceiverParams struct {
	fx.In

	Backend  tracer.Backend
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewWithDI builds a Receiver from injected dependencies.
func NewWithDI(params ReceiverParams) *Receiver {
	var opts []Option
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return New(params.Backend, params.Logger, opts...)
}

// ReceiverLifecycleParams groups the dependencies of RegisterReceiverLifecycle.
type ReceiverLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Receiver  *Receiver
}

// RegisterReceiverLifecycle closes the receiver on stop. The backend
// connection is left as it is.
func RegisterReceiverLifecycle(params ReceiverLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Receiver.Close()
		},
	})
}
