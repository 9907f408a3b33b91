package schema_registry

import "time"

// DefaultTimeout bounds every registry request when Config.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Config holds the connection parameters of a Confluent Schema Registry.
type Config struct {
	// Enabled makes the kafka feed expect registry-framed messages.
	Enabled bool `yaml:"enabled" envconfig:"SCHEMA_REGISTRY_ENABLED"`

	// URL is the registry endpoint, e.g. "http://localhost:8081".
	URL string `yaml:"url" envconfig:"SCHEMA_REGISTRY_URL"`

	Username string `yaml:"username" envconfig:"SCHEMA_REGISTRY_USERNAME"`
	Password string `yaml:"password" envconfig:"SCHEMA_REGISTRY_PASSWORD" json:"-"` //nolint:gosec

	Timeout time.Duration `yaml:"timeout" envconfig:"SCHEMA_REGISTRY_TIMEOUT" default:"10s"`
}
