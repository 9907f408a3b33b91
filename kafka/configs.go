package kafka

import (
	"fmt"
	"time"
)

// Defaults applied by NewSpanFeed to zero-valued fields.
const (
	DefaultTopic         = "htrace-spans"
	DefaultGroupID       = "spanbridge"
	DefaultMinBytes      = 1
	DefaultMaxBytes      = 10e6
	DefaultMaxWait       = 10 * time.Second
	DefaultStartOffset   = FirstOffset
	DefaultFetchBackoff  = time.Second
	DefaultCommitTimeout = 10 * time.Second

	// Where a new consumer group starts reading.
	FirstOffset = -2
	LastOffset  = -1
)

// Config describes the topic the feed consumes HTrace spans from.
//
// Each message value holds one HTrace JSON span or a JSON array of them.
type Config struct {
	// Enabled turns the feed on. A disabled feed builds no reader and its
	// fx lifecycle hooks do nothing.
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_ENABLED"`

	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"htrace-spans"`

	// GroupID enables consumer-group offset tracking. Messages are committed
	// after their spans were handed to the receiver; without a group nothing
	// is committed and every restart reads from StartOffset.
	GroupID string `yaml:"group_id" envconfig:"KAFKA_GROUP_ID" default:"spanbridge"`

	MinBytes int           `yaml:"min_bytes" envconfig:"KAFKA_MIN_BYTES"`
	MaxBytes int           `yaml:"max_bytes" envconfig:"KAFKA_MAX_BYTES"`
	MaxWait  time.Duration `yaml:"max_wait" envconfig:"KAFKA_MAX_WAIT"`

	// StartOffset is FirstOffset or LastOffset.
	StartOffset int64 `yaml:"start_offset" envconfig:"KAFKA_START_OFFSET"`

	// FetchBackoff is the pause after a failed fetch.
	FetchBackoff time.Duration `yaml:"fetch_backoff" envconfig:"KAFKA_FETCH_BACKOFF"`

	TLS  TLSConfig  `yaml:"tls" envconfig:"KAFKA_TLS"`
	SASL SASLConfig `yaml:"sasl" envconfig:"KAFKA_SASL"`
}

// TLSConfig enables TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" envconfig:"ENABLED"`
	CACertPath         string `yaml:"ca_cert_path" envconfig:"CA_CERT_PATH"`
	ClientCertPath     string `yaml:"client_cert_path" envconfig:"CLIENT_CERT_PATH"`
	ClientKeyPath      string `yaml:"client_key_path" envconfig:"CLIENT_KEY_PATH"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" envconfig:"INSECURE_SKIP_VERIFY"`
}

// SASLConfig enables SASL authentication.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`

	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	Mechanism string `yaml:"mechanism" envconfig:"MECHANISM"`
	Username  string `yaml:"username" envconfig:"USERNAME"`
	Password  string `yaml:"password" envconfig:"PASSWORD"` //nolint:gosec
}

func (c Config) withDefaults() Config {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.MinBytes == 0 {
		c.MinBytes = DefaultMinBytes
	}
	if c.MaxBytes == 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.MaxWait == 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.StartOffset == 0 {
		c.StartOffset = DefaultStartOffset
	}
	if c.FetchBackoff == 0 {
		c.FetchBackoff = DefaultFetchBackoff
	}
	return c
}

// Validate checks an enabled config. A disabled config is always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("%w: no brokers", ErrInvalidConfig)
	}
	if c.StartOffset != 0 && c.StartOffset != FirstOffset && c.StartOffset != LastOffset {
		return fmt.Errorf("%w: start offset %d", ErrInvalidConfig, c.StartOffset)
	}
	if c.MinBytes < 0 || c.MaxBytes < 0 || (c.MaxBytes > 0 && c.MinBytes > c.MaxBytes) {
		return fmt.Errorf("%w: min bytes %d, max bytes %d", ErrInvalidConfig, c.MinBytes, c.MaxBytes)
	}
	return nil
}
