package receiver

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/spanbridge/htrace"
	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/tracer"
)

func backendConfig() tracer.Config {
	return tracer.Config{
		CollectorHost:     "localhost",
		CollectorPort:     4318,
		CollectorProtocol: "http",
		ComponentName:     "receiver-test",
	}
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func (o *recordingObserver) operations() []observability.OperationContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]observability.OperationContext(nil), o.ops...)
}

func newTestReceiver(t *testing.T) (*Receiver, *tracer.BackendClient, *tracetest.InMemoryExporter, *recordingObserver) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	backend := tracer.NewBackendClient(backendConfig(), nil, tracer.WithExporter(exporter))
	obs := &recordingObserver{}
	return New(backend, nil, WithObserver(obs)), backend, exporter, obs
}

func TestReceiveSpan_ReadRow(t *testing.T) {
	t.Parallel()
	r, backend, exporter, obs := newTestReceiver(t)

	r.ReceiveSpan(readRowSpan())

	assert.Equal(t, tracer.StateReady, backend.State())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]

	assert.Equal(t, "read-row", got.Name)
	assert.Equal(t, tracer.TraceIDFromUint64(100), got.SpanContext.TraceID())
	assert.Equal(t, tracer.SpanIDFromUint64(200), got.SpanContext.SpanID())
	assert.Equal(t, tracer.TraceIDFromUint64(100), got.Parent.TraceID())
	assert.Equal(t, tracer.SpanIDFromUint64(50), got.Parent.SpanID())
	assert.Equal(t, int64(1_000_000), got.StartTime.UnixMicro())
	assert.Equal(t, int64(1_500_000), got.EndTime.UnixMicro())

	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.Int64("retries", 3),
		attribute.Bool("cached", false),
	}, got.Attributes)

	require.Len(t, got.Events, 1)
	assert.Equal(t, "cache-miss", got.Events[0].Name)
	assert.Equal(t, int64(1_200_000), got.Events[0].Time.UnixMicro())

	ops := obs.operations()
	require.Len(t, ops, 1)
	assert.Equal(t, observability.ComponentReceiver, ops[0].Component)
	assert.Equal(t, OperationSubmit, ops[0].Operation)
	assert.Equal(t, "read-row", ops[0].Resource)
	assert.Equal(t, int64(2), ops[0].Size)
	assert.NoError(t, ops[0].Error)
}

func TestReceiveSpan_Root(t *testing.T) {
	t.Parallel()
	r, _, exporter, _ := newTestReceiver(t)

	r.ReceiveSpan(htrace.Span{Description: "scan", TraceID: 7, SpanID: 8, StartMillis: 10, StopMillis: 20})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.False(t, spans[0].Parent.IsValid())
	assert.Empty(t, spans[0].Attributes)
	assert.Empty(t, spans[0].Events)
}

func TestReceiveSpan_AnnotationCompleteness(t *testing.T) {
	t.Parallel()
	r, _, exporter, _ := newTestReceiver(t)

	span := htrace.Span{Description: "bulk", TraceID: 1, SpanID: 2, KVAnnotations: map[string]string{}}
	for i := 0; i < 500; i++ {
		span.KVAnnotations[fmt.Sprintf("k%d", i)] = fmt.Sprintf("v%d", i)
		span.TimelineAnnotations = append(span.TimelineAnnotations, htrace.TimelineAnnotation{
			TimeMillis: int64(1000 + i),
			Message:    fmt.Sprintf("m%d", i),
		})
	}

	r.ReceiveSpan(span)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Attributes, 500)
	assert.Zero(t, spans[0].DroppedAttributes)
	require.Len(t, spans[0].Events, 500)
	assert.Zero(t, spans[0].DroppedEvents)
	for i, ev := range spans[0].Events {
		assert.Equal(t, fmt.Sprintf("m%d", i), ev.Name)
	}
}

func TestReceiveSpan_BackendFailed(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.LoggerClient{Zap: zap.New(core)}

	cfg := backendConfig()
	cfg.CollectorProtocol = "gopher"
	backend := tracer.NewBackendClient(cfg, log)
	obs := &recordingObserver{}
	r := New(backend, log, WithObserver(obs))

	assert.NotPanics(t, func() {
		r.ReceiveSpan(readRowSpan())
		r.ReceiveSpan(readRowSpan())
	})

	assert.Equal(t, tracer.StateFailed, backend.State())
	assert.ErrorIs(t, backend.Err(), tracer.ErrInvalidProtocol)
	assert.Equal(t, int64(1), backend.Attempts())

	ops := obs.operations()
	require.Len(t, ops, 2)
	for _, op := range ops {
		assert.Equal(t, OperationDrop, op.Operation)
		assert.ErrorIs(t, op.Error, ErrBackendNotReady)
	}

	assert.Equal(t, 2, logs.FilterMessage("received span").Len())
	assert.Equal(t, 2, logs.FilterMessage("dropping span").Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestReceiveSpan_LogsSpanJSON(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.LoggerClient{Zap: zap.New(core)}

	backend := tracer.NewBackendClient(backendConfig(), nil, tracer.WithExporter(tracetest.NewInMemoryExporter()))
	r := New(backend, log)

	r.ReceiveSpan(readRowSpan())

	entries := logs.FilterMessage("received span").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["span"], `"d":"read-row"`)
}

func TestReceiveSpan_Concurrent(t *testing.T) {
	t.Parallel()
	r, backend, exporter, obs := newTestReceiver(t)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.ReceiveSpanContext(context.Background(), htrace.Span{
				Description: "concurrent",
				TraceID:     1,
				SpanID:      uint64(i + 1),
				Parents:     []uint64{1000},
				StartMillis: int64(i),
				StopMillis:  int64(i + 1),
				KVAnnotations: map[string]string{
					"worker": fmt.Sprint(i),
				},
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), backend.Attempts())
	assert.Len(t, exporter.GetSpans(), workers)
	assert.Len(t, obs.operations(), workers)

	seen := make(map[uint64]bool)
	for _, s := range exporter.GetSpans() {
		seen[tracer.Uint64FromSpanID(s.SpanContext.SpanID())] = true
	}
	assert.Len(t, seen, workers)
}

func TestReceiveSpan_NoObserver(t *testing.T) {
	t.Parallel()
	backend := tracer.NewBackendClient(backendConfig(), nil, tracer.WithExporter(tracetest.NewInMemoryExporter()))
	r := New(backend, nil)

	assert.NotPanics(t, func() { r.ReceiveSpan(readRowSpan()) })
}

func TestReceiveSpan_ObservedDuration(t *testing.T) {
	t.Parallel()
	r, _, _, obs := newTestReceiver(t)

	r.ReceiveSpan(readRowSpan())

	ops := obs.operations()
	require.Len(t, ops, 1)
	assert.GreaterOrEqual(t, ops[0].Duration, time.Duration(0))
	assert.Equal(t, 1, ops[0].Metadata["logs"])
}

func TestClose(t *testing.T) {
	t.Parallel()
	r, backend, exporter, _ := newTestReceiver(t)

	r.ReceiveSpan(readRowSpan())
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	// The backend is untouched and keeps accepting spans.
	assert.Equal(t, tracer.StateReady, backend.State())
	r.ReceiveSpan(readRowSpan())
	assert.Len(t, exporter.GetSpans(), 2)
}

func TestReceiver_ImplementsSpanReceiver(t *testing.T) {
	t.Parallel()
	var _ SpanReceiver = New(nil, nil)
}
