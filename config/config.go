// Package config loads every spanbridge package configuration from the
// environment.
//
// Variables share the SPANBRIDGE_ prefix, e.g. SPANBRIDGE_COLLECTOR_HOST,
// SPANBRIDGE_LOG_LEVEL, SPANBRIDGE_KAFKA_BROKERS or SPANBRIDGE_INGEST_ADDRESS.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/ingest"
	"github.com/aalemi-dev/spanbridge/kafka"
	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/metrics"
	"github.com/aalemi-dev/spanbridge/schema_registry"
	"github.com/aalemi-dev/spanbridge/tracer"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SPANBRIDGE"

// Config holds the configuration of every module.
type Config struct {
	Logger  logger.Config
	Tracer  tracer.Config
	Metrics metrics.Config
	Kafka   kafka.Config
	Ingest  ingest.Config

	SchemaRegistry schema_registry.Config
}

// Load reads the configuration from the environment. Unset variables take
// the defaults declared on each package's Config.
func Load() (*Config, error) {
	var cfg Config

	targets := []struct {
		name string
		spec interface{}
	}{
		{"logger", &cfg.Logger},
		{"tracer", &cfg.Tracer},
		{"metrics", &cfg.Metrics},
		{"kafka", &cfg.Kafka},
		{"ingest", &cfg.Ingest},
		{"schema registry", &cfg.SchemaRegistry},
	}
	for _, target := range targets {
		if err := envconfig.Process(Prefix, target.spec); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", target.name, err)
		}
	}
	return &cfg, nil
}

// Supply makes every module configuration available to an fx app.
func (c *Config) Supply() fx.Option {
	return fx.Supply(c.Logger, c.Tracer, c.Metrics, c.Kafka, c.Ingest, c.SchemaRegistry)
}
