package ingest

import "time"

// Defaults applied by NewServer to zero-valued fields.
const (
	DefaultAddress           = ":5151"
	DefaultMaxBodyBytes      = 4 << 20
	DefaultReadHeaderTimeout = 5 * time.Second

	SpansPath  = "/v1/spans"
	HealthPath = "/healthz"
)

// Config controls the HTTP span endpoint.
type Config struct {
	// Enabled turns the endpoint on. A disabled server is built but never
	// listens.
	Enabled bool `yaml:"enabled" envconfig:"INGEST_ENABLED"`

	// Address is the listen address, e.g. ":5151" or "127.0.0.1:0".
	Address string `yaml:"address" envconfig:"INGEST_ADDRESS" default:":5151"`

	// MaxBodyBytes caps a request body. Larger bodies get 413.
	MaxBodyBytes int64 `yaml:"max_body_bytes" envconfig:"INGEST_MAX_BODY_BYTES" default:"4194304"`

	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" envconfig:"INGEST_READ_HEADER_TIMEOUT" default:"5s"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	return c
}
