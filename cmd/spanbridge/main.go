// Command spanbridge forwards HTrace spans to an OpenTelemetry collector.
//
// Spans arrive through the Kafka feed and the HTTP ingest endpoint; both are
// off by default and enabled with SPANBRIDGE_KAFKA_ENABLED and
// SPANBRIDGE_INGEST_ENABLED. With SPANBRIDGE_SCHEMA_REGISTRY_ENABLED the Kafka
// feed expects messages framed by a Confluent Schema Registry serializer. See
// package config for the other variables.
package main

import (
	"log"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/aalemi-dev/spanbridge/config"
	"github.com/aalemi-dev/spanbridge/ingest"
	"github.com/aalemi-dev/spanbridge/kafka"
	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/metrics"
	"github.com/aalemi-dev/spanbridge/receiver"
	"github.com/aalemi-dev/spanbridge/schema_registry"
	"github.com/aalemi-dev/spanbridge/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("spanbridge: %v", err)
	}

	fx.New(options(cfg)...).Run()
}

func options(cfg *config.Config) []fx.Option {
	opts := []fx.Option{
		cfg.Supply(),
		logger.FXModule,
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
		metrics.FXModule,
		tracer.FXModule,
		receiver.FXModule,
		kafka.FXModule,
		ingest.FXModule,
	}
	if cfg.SchemaRegistry.Enabled {
		opts = append(opts, schema_registry.FXModule)
	}
	return opts
}
