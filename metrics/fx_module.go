package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/logger"
)

// FXModule provides *Metrics, the MetricsCollector interface and an
// observability.Observer backed by NewSpanObserver, and runs both metrics
// servers for the lifetime of the app.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
		NewSpanObserver,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies of RegisterMetricsLifecycle.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle binds both servers on start and shuts them down on
// stop. A bind failure aborts startup.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	log := params.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	servers := map[string]*http.Server{
		"system":      params.Metrics.SystemServer,
		"application": params.Metrics.ApplicationServer,
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var started []*http.Server
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					for _, s := range started {
						_ = s.Close()
					}
					return err
				}
				started = append(started, srv)
				log.Info("starting metrics server", nil, map[string]interface{}{
					"endpoint": name,
					"address":  ln.Addr().String(),
				})
				go func(name string, srv *http.Server) {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("metrics server stopped", err, map[string]interface{}{"endpoint": name})
					}
				}(name, srv)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				log.Info("shutting down metrics server", nil, map[string]interface{}{"endpoint": name})
				if err := srv.Shutdown(ctx); err != nil {
					log.Error("metrics server shutdown failed", err, map[string]interface{}{"endpoint": name})
				}
			}
			return nil
		},
	})
}
