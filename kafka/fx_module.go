package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/receiver"
)

// FXModule provides *SpanFeed and the Feed interface and runs the feed for
// the lifetime of the app when Config.Enabled is set.
//
//	app := fx.New(
//	    tracer.FXModule,
//	    receiver.FXModule,
//	    kafka.FXModule,
//	    fx.Supply(kafka.Config{Enabled: true, Brokers: []string{"kafka:9092"}}),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewSpanFeedWithDI,
		fx.Annotate(
			func(f *SpanFeed) Feed { return f },
			fx.As(new(Feed)),
		),
	),
	fx.Invoke(RegisterFeedLifecycle),
)

// FeedParams groups the dependencies of NewSpanFeedWithDI.
type FeedParams struct {
	fx.In

	Config   Config
	Receiver receiver.SpanReceiver
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Decoder  Decoder                `optional:"true"`
}

// NewSpanFeedWithDI builds a SpanFeed from injected dependencies.
func NewSpanFeedWithDI(params FeedParams) (*SpanFeed, error) {
	var opts []Option
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	if params.Decoder != nil {
		opts = append(opts, WithDecoder(params.Decoder))
	}
	return NewSpanFeed(params.Config, params.Receiver, params.Logger, opts...)
}

// FeedLifecycleParams groups the dependencies of RegisterFeedLifecycle.
type FeedLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Feed      *SpanFeed
}

// RegisterFeedLifecycle runs the feed in the background from start to stop.
// On stop it waits for the in-flight message to be handled, bounded by the
// stop context.
func RegisterFeedLifecycle(params FeedLifecycleParams) {
	feed := params.Feed
	if !feed.Enabled() {
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				if err := feed.Run(runCtx); err != nil {
					feed.log.Error("kafka span feed exited", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			feed.GracefulShutdown()

			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
