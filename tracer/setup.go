package tracer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/spanbridge/logger"
)

// ScopeName is the instrumentation scope of every forwarded span.
const ScopeName = "github.com/aalemi-dev/spanbridge"

// ProviderFactory builds the tracer provider for a config. The default
// factory exports over OTLP/HTTP; tests substitute their own.
type ProviderFactory func(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error)

// Option customizes a BackendClient.
type Option func(*BackendClient)

// WithProviderFactory replaces the tracer provider construction entirely.
func WithProviderFactory(factory ProviderFactory) Option {
	return func(b *BackendClient) {
		b.factory = factory
	}
}

// WithExporter keeps the default construction, config validation included,
// but exports to exporter instead of an OTLP/HTTP client.
func WithExporter(exporter sdktrace.SpanExporter) Option {
	return func(b *BackendClient) {
		b.exporter = exporter
	}
}

// BackendClient owns the single downstream tracer connection of a process.
//
// The connection is built lazily by the first EnsureInitialized call. A mutex
// serializes that one attempt; afterwards the state is read with a single
// atomic load, so the per-span cost of EnsureInitialized stays constant.
//
// BackendClient implements the Backend interface.
type BackendClient struct {
	cfg      Config
	log      logger.Logger
	factory  ProviderFactory
	exporter sdktrace.SpanExporter

	// mu guards the Uninitialized -> Ready/Failed transition and err.
	mu sync.Mutex

	state    atomic.Int32
	attempts atomic.Int64

	// provider and tracer are written under mu before state becomes Ready and
	// never change afterwards.
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer

	err error
}

// NewBackendClient returns an uninitialized backend. Nothing is dialed or
// validated until EnsureInitialized.
//
// Example:
//
//	backend := tracer.NewBackendClient(tracer.Config{
//	    AccessToken:       token,
//	    CollectorHost:     "collector.example.com",
//	    CollectorPort:     5150,
//	    CollectorProtocol: "https",
//	    ComponentName:     "HBase tracer",
//	}, log)
//
//	backend.EnsureInitialized(ctx)
//	if backend.State() == tracer.StateFailed {
//	    // spans will be dropped until backend.Reset()
//	}
func NewBackendClient(cfg Config, log logger.Logger, opts ...Option) *BackendClient {
	if log == nil {
		log = logger.NewNopLogger()
	}

	b := &BackendClient{
		cfg: cfg,
		log: log,
	}
	b.factory = b.defaultProvider

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// EnsureInitialized implements Backend.
func (b *BackendClient) EnsureInitialized(ctx context.Context) {
	if State(b.state.Load()).settled() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if State(b.state.Load()) != StateUninitialized {
		return
	}

	b.state.Store(int32(StateInitializing))
	b.attempts.Add(1)

	fields := map[string]interface{}{
		"collector_host":     b.cfg.CollectorHost,
		"collector_port":     b.cfg.CollectorPort,
		"collector_protocol": b.cfg.CollectorProtocol,
		"component_name":     b.cfg.ComponentName,
	}
	b.log.InfoWithContext(ctx, "initializing trace backend", nil, fields)

	provider, err := b.factory(ctx, b.cfg)
	if err != nil {
		b.err = err
		b.state.Store(int32(StateFailed))
		b.log.ErrorWithContext(ctx, "trace backend initialization failed; spans will be dropped", err, fields)
		return
	}

	b.provider = provider
	b.tracer = provider.Tracer(ScopeName)
	b.err = nil

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	b.state.Store(int32(StateReady))
	b.log.InfoWithContext(ctx, "trace backend ready; registered as global tracer provider", nil, fields)
}

// State implements Backend.
func (b *BackendClient) State() State {
	return State(b.state.Load())
}

// Ready reports whether spans can be submitted.
func (b *BackendClient) Ready() bool {
	return b.State() == StateReady
}

// Err implements Backend.
func (b *BackendClient) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Attempts returns how many times construction has been attempted.
func (b *BackendClient) Attempts() int64 {
	return b.attempts.Load()
}

// Reset implements Backend.
func (b *BackendClient) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if State(b.state.Load()) != StateFailed {
		return
	}

	b.log.Info("resetting failed trace backend", b.err)
	b.err = nil
	b.state.Store(int32(StateUninitialized))
}

// TracerProvider returns the constructed provider, or nil before Ready.
func (b *BackendClient) TracerProvider() *sdktrace.TracerProvider {
	if !b.Ready() {
		return nil
	}
	return b.provider
}

// StartSpan implements Backend.
//
// The span gets exactly start.TraceID and start.SpanID. With HasParent set,
// it becomes the child of the remote span (TraceID, ParentSpanID); otherwise
// it is a new root regardless of any span already in ctx.
func (b *BackendClient) StartSpan(ctx context.Context, start SpanStart) (trace.Span, bool) {
	if !b.Ready() {
		return nil, false
	}

	tid := TraceIDFromUint64(start.TraceID)
	ctx = contextWithExplicitIDs(ctx, tid, SpanIDFromUint64(start.SpanID))

	opts := []trace.SpanStartOption{
		trace.WithTimestamp(time.UnixMicro(start.StartMicros)),
	}

	if start.HasParent {
		parent := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    tid,
			SpanID:     SpanIDFromUint64(start.ParentSpanID),
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})
		ctx = trace.ContextWithRemoteSpanContext(ctx, parent)
	} else {
		opts = append(opts, trace.WithNewRoot())
	}

	_, span := b.tracer.Start(ctx, start.Name, opts...)
	return span, true
}

// defaultProvider validates the config and builds a provider that exports
// each span synchronously as it ends.
func (b *BackendClient) defaultProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	endpoint, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}

	exporter := b.exporter
	if exporter == nil {
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint.Host),
			otlptracehttp.WithURLPath(endpoint.Path),
		}
		if endpoint.Scheme == "http" {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if cfg.AccessToken != "" {
			opts = append(opts, otlptracehttp.WithHeaders(map[string]string{AccessTokenHeader: cfg.AccessToken}))
		}

		exporter, err = otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OTLP exporter: %w", err)
		}
	}

	if cfg.Verbosity >= VerbosityErrors {
		otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
			b.log.Error("trace backend error", err)
		}))
	}
	if cfg.Verbosity >= VerbosityDebug {
		exporter = &loggingExporter{next: exporter, log: b.log}
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ComponentName),
		attribute.String("collector.endpoint", endpoint.String()),
	}
	if cfg.AppEnv != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.AppEnv))
	}

	// Every annotation must survive as an attribute or event.
	limits := sdktrace.NewSpanLimits()
	limits.AttributeCountLimit = -1
	limits.EventCountLimit = -1

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithRawSpanLimits(limits),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithIDGenerator(explicitIDGenerator{}),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attrs...)),
	), nil
}
