package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/receiver"
)

// messageReader is the part of *kafka.Reader the feed uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SpanFeed consumes HTrace spans from a Kafka topic and hands each one to a
// receiver.
//
// SpanFeed implements the Feed interface.
type SpanFeed struct {
	cfg      Config
	receiver receiver.SpanReceiver
	decoder  Decoder
	observer observability.Observer
	log      logger.Logger

	// reader is nil when the feed is disabled.
	reader messageReader

	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
}

// Option customizes a SpanFeed.
type Option func(*SpanFeed)

// WithObserver reports fetches, decodes and commits to o.
func WithObserver(o observability.Observer) Option {
	return func(f *SpanFeed) {
		f.observer = o
	}
}

// WithDecoder replaces the HTrace JSON decoder.
func WithDecoder(d Decoder) Option {
	return func(f *SpanFeed) {
		f.decoder = d
	}
}

// NewSpanFeed validates cfg and builds the reader. Nothing is fetched until
// Run.
//
//	feed, err := kafka.NewSpanFeed(kafka.Config{
//	    Enabled: true,
//	    Brokers: []string{"kafka-1:9092", "kafka-2:9092"},
//	    Topic:   "htrace-spans",
//	}, rcv, log)
//	if err != nil {
//	    return err
//	}
//	go feed.Run(ctx)
//	defer feed.GracefulShutdown()
func NewSpanFeed(cfg Config, rcv receiver.SpanReceiver, log logger.Logger, opts ...Option) (*SpanFeed, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	f := &SpanFeed{
		cfg:            cfg.withDefaults(),
		receiver:       rcv,
		decoder:        JSONDecoder{},
		log:            log,
		shutdownSignal: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}

	if !cfg.Enabled {
		return f, nil
	}

	dialer := &kafka.Dialer{DualStack: true}

	if cfg.TLS.Enabled {
		tlsConfig, err := createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		dialer.TLS = tlsConfig
	}

	if cfg.SASL.Enabled {
		mechanism, err := createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
		dialer.SASLMechanism = mechanism
	}

	f.reader = kafka.NewReader(f.readerConfig(dialer))
	return f, nil
}

// Enabled reports whether the feed has a reader.
func (f *SpanFeed) Enabled() bool {
	return f.reader != nil
}

func (f *SpanFeed) readerConfig(dialer *kafka.Dialer) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:     f.cfg.Brokers,
		Topic:       f.cfg.Topic,
		GroupID:     f.cfg.GroupID,
		MinBytes:    f.cfg.MinBytes,
		MaxBytes:    f.cfg.MaxBytes,
		MaxWait:     f.cfg.MaxWait,
		StartOffset: f.cfg.StartOffset,
		Dialer:      dialer,
		ErrorLogger: f.errorLogger(),

		// Offsets are committed explicitly once a message was handled.
		CommitInterval: 0,
	}
}

// errorLogger forwards kafka-go's internal errors to the feed's logger.
func (f *SpanFeed) errorLogger() kafka.LoggerFunc {
	return func(msg string, args ...interface{}) {
		if len(args) > 0 {
			msg = fmt.Sprintf(msg, args...)
		}
		f.log.Error("kafka reader error", nil, map[string]interface{}{
			"error": msg,
			"topic": f.cfg.Topic,
		})
	}
}

// GracefulShutdown stops Run and closes the reader. It is safe to call more
// than once.
func (f *SpanFeed) GracefulShutdown() {
	f.closeShutdownOnce.Do(func() {
		close(f.shutdownSignal)

		if f.reader == nil {
			return
		}
		f.log.Info("closing kafka span feed", nil, map[string]interface{}{"topic": f.cfg.Topic})
		if err := f.reader.Close(); err != nil {
			f.log.Warn("failed to close kafka reader", err, nil)
		}
	})
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert %s", cfg.CACertPath)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{Username: cfg.Username, Password: cfg.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("%w: unsupported SASL mechanism %q", ErrInvalidConfig, cfg.Mechanism)
	}
}
