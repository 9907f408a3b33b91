package tracer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/spanbridge/logger"
)

func validConfig() Config {
	return Config{
		CollectorHost:     "localhost",
		CollectorPort:     4318,
		CollectorProtocol: "http",
		ComponentName:     "test-component",
		Verbosity:         VerbositySilent,
	}
}

func newObservedLogger(level zapcore.Level) (*logger.LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &logger.LoggerClient{Zap: zap.New(core)}, logs
}

func newReadyBackend(t *testing.T) (*BackendClient, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	b := NewBackendClient(validConfig(), nil, WithExporter(exporter))
	b.EnsureInitialized(context.Background())
	require.Equal(t, StateReady, b.State(), "backend error: %v", b.Err())
	return b, exporter
}

func TestNewBackendClient_StartsUninitialized(t *testing.T) {
	t.Parallel()
	b := NewBackendClient(validConfig(), nil)

	assert.Equal(t, StateUninitialized, b.State())
	assert.False(t, b.Ready())
	assert.NoError(t, b.Err())
	assert.Nil(t, b.TracerProvider())
	assert.Equal(t, int64(0), b.Attempts())

	span, ok := b.StartSpan(context.Background(), SpanStart{Name: "early", TraceID: 1, SpanID: 2})
	assert.False(t, ok)
	assert.Nil(t, span)
}

func TestEnsureInitialized_Ready(t *testing.T) {
	t.Parallel()
	log, logs := newObservedLogger(zapcore.InfoLevel)
	b := NewBackendClient(validConfig(), log, WithExporter(tracetest.NewInMemoryExporter()))

	b.EnsureInitialized(context.Background())

	assert.Equal(t, StateReady, b.State())
	assert.True(t, b.Ready())
	assert.NoError(t, b.Err())
	assert.NotNil(t, b.TracerProvider())
	assert.Equal(t, int64(1), b.Attempts())
	assert.Equal(t, 1, logs.FilterMessageSnippet("trace backend ready").Len())

	b.EnsureInitialized(context.Background())
	assert.Equal(t, int64(1), b.Attempts())
}

func TestEnsureInitialized_RegistersGlobalProvider(t *testing.T) {
	// Not parallel: asserts on process-wide state.
	b := NewBackendClient(validConfig(), nil, WithExporter(tracetest.NewInMemoryExporter()))
	b.EnsureInitialized(context.Background())
	require.True(t, b.Ready())

	_, span := otel.Tracer("global-check").Start(context.Background(), "probe")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.IsRecording())
}

func TestEnsureInitialized_FailureIsLoggedAndTerminal(t *testing.T) {
	t.Parallel()
	log, logs := newObservedLogger(zapcore.InfoLevel)
	cfg := validConfig()
	cfg.CollectorHost = ""

	b := NewBackendClient(cfg, log)

	assert.NotPanics(t, func() { b.EnsureInitialized(context.Background()) })
	assert.Equal(t, StateFailed, b.State())
	assert.ErrorIs(t, b.Err(), ErrInvalidAddress)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	// No automatic retry.
	b.EnsureInitialized(context.Background())
	b.EnsureInitialized(context.Background())
	assert.Equal(t, int64(1), b.Attempts())
	assert.Equal(t, StateFailed, b.State())

	_, ok := b.StartSpan(context.Background(), SpanStart{Name: "dropped"})
	assert.False(t, ok)
}

func TestEnsureInitialized_OTLPExporterCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBackendClient(validConfig(), nil)
	b.EnsureInitialized(ctx)

	assert.Equal(t, StateFailed, b.State())
	require.Error(t, b.Err())
	assert.Contains(t, b.Err().Error(), "failed to initialize OTLP exporter")
}

func TestEnsureInitialized_OTLPExporterLazyConnect(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.AccessToken = "token"
	cfg.CollectorPort = 1

	// The OTLP/HTTP client does not dial until the first export.
	b := NewBackendClient(cfg, nil)
	b.EnsureInitialized(context.Background())

	assert.Equal(t, StateReady, b.State())
}

func TestReset(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	factory := func(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("collector unreachable")
		}
		return sdktrace.NewTracerProvider(), nil
	}

	b := NewBackendClient(validConfig(), nil, WithProviderFactory(factory))

	b.EnsureInitialized(context.Background())
	require.Equal(t, StateFailed, b.State())

	b.Reset()
	assert.Equal(t, StateUninitialized, b.State())
	assert.NoError(t, b.Err())

	b.EnsureInitialized(context.Background())
	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, int64(2), b.Attempts())

	// Reset leaves a ready backend alone.
	b.Reset()
	assert.Equal(t, StateReady, b.State())
}

func TestEnsureInitialized_ConcurrentCallersConstructOnce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fail bool
		want State
	}{
		{"success", false, StateReady},
		{"failure", true, StateFailed},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int64
			factory := func(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				if tc.fail {
					return nil, errors.New("boom")
				}
				return sdktrace.NewTracerProvider(), nil
			}

			b := NewBackendClient(validConfig(), nil, WithProviderFactory(factory))

			const callers = 64
			var wg sync.WaitGroup
			states := make([]State, callers)
			start := make(chan struct{})
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					b.EnsureInitialized(context.Background())
					states[i] = b.State()
				}(i)
			}
			close(start)
			wg.Wait()

			assert.Equal(t, int64(1), calls.Load())
			for _, s := range states {
				assert.Equal(t, tc.want, s)
			}
		})
	}
}

func TestEnsureInitialized_WaitersBlockUntilDone(t *testing.T) {
	t.Parallel()
	entered := make(chan struct{})
	release := make(chan struct{})
	factory := func(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
		close(entered)
		<-release
		return sdktrace.NewTracerProvider(), nil
	}

	b := NewBackendClient(validConfig(), nil, WithProviderFactory(factory))

	go b.EnsureInitialized(context.Background())
	<-entered
	assert.Equal(t, StateInitializing, b.State())

	waiterDone := make(chan State, 1)
	go func() {
		b.EnsureInitialized(context.Background())
		waiterDone <- b.State()
	}()

	select {
	case <-waiterDone:
		t.Fatal("waiter returned before initialization finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case s := <-waiterDone:
		assert.Equal(t, StateReady, s)
	case <-time.After(5 * time.Second):
		t.Fatal("waiter never returned")
	}
}

func TestStartSpan_ExplicitIdentityAndParent(t *testing.T) {
	t.Parallel()
	b, exporter := newReadyBackend(t)

	span, ok := b.StartSpan(context.Background(), SpanStart{
		Name:         "read-row",
		TraceID:      100,
		SpanID:       200,
		ParentSpanID: 50,
		HasParent:    true,
		StartMicros:  1_000_000,
	})
	require.True(t, ok)
	span.End(trace.WithTimestamp(time.UnixMicro(1_500_000)))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]

	assert.Equal(t, "read-row", got.Name)
	assert.Equal(t, TraceIDFromUint64(100), got.SpanContext.TraceID())
	assert.Equal(t, SpanIDFromUint64(200), got.SpanContext.SpanID())
	assert.Equal(t, TraceIDFromUint64(100), got.Parent.TraceID())
	assert.Equal(t, SpanIDFromUint64(50), got.Parent.SpanID())
	assert.True(t, got.Parent.IsRemote())
	assert.Equal(t, int64(1_000_000), got.StartTime.UnixMicro())
	assert.Equal(t, int64(1_500_000), got.EndTime.UnixMicro())
	assert.Equal(t, ScopeName, got.InstrumentationScope.Name)
}

func TestStartSpan_RootIgnoresSpanInContext(t *testing.T) {
	t.Parallel()
	b, exporter := newReadyBackend(t)

	ambient := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    TraceIDFromUint64(7),
		SpanID:     SpanIDFromUint64(8),
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), ambient)

	span, ok := b.StartSpan(ctx, SpanStart{Name: "root", TraceID: 300, SpanID: 301})
	require.True(t, ok)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.False(t, spans[0].Parent.IsValid())
	assert.Equal(t, TraceIDFromUint64(300), spans[0].SpanContext.TraceID())
	assert.Equal(t, SpanIDFromUint64(301), spans[0].SpanContext.SpanID())
}

func TestVerbosityDebug_LogsExportedSpans(t *testing.T) {
	t.Parallel()
	log, logs := newObservedLogger(zapcore.DebugLevel)
	cfg := validConfig()
	cfg.Verbosity = VerbosityDebug

	exporter := tracetest.NewInMemoryExporter()
	b := NewBackendClient(cfg, log, WithExporter(exporter))
	b.EnsureInitialized(context.Background())
	require.True(t, b.Ready())

	span, ok := b.StartSpan(context.Background(), SpanStart{Name: "scan", TraceID: 1, SpanID: 2})
	require.True(t, ok)
	span.End()

	entries := logs.FilterMessage("exporting span").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "scan", entries[0].ContextMap()["name"])
	assert.Len(t, exporter.GetSpans(), 1)
}

func TestBackendClient_ImplementsBackend(t *testing.T) {
	t.Parallel()
	var _ Backend = NewBackendClient(validConfig(), nil)
}
