package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/spanbridge/htrace"
	"github.com/aalemi-dev/spanbridge/receiver"
)

func TestFXModule_Disabled(t *testing.T) {
	t.Parallel()
	rcv := &recordingReceiver{}

	var feed Feed
	app := fxtest.New(t,
		FXModule,
		fx.Supply(Config{}),
		fx.Provide(func() receiver.SpanReceiver { return rcv }),
		fx.Populate(&feed),
	)

	app.RequireStart()
	app.RequireStop()

	require.NotNil(t, feed)
	assert.False(t, feed.(*SpanFeed).Enabled())
}

func TestFXModule_InvalidConfig(t *testing.T) {
	t.Parallel()

	app := fx.New(
		FXModule,
		fx.NopLogger,
		fx.Supply(Config{Enabled: true}),
		fx.Provide(func() receiver.SpanReceiver { return &recordingReceiver{} }),
	)
	assert.ErrorContains(t, app.Err(), "invalid config")
}

func TestRegisterFeedLifecycle(t *testing.T) {
	t.Parallel()

	reader := newFakeReader(spanMessage(t, 1, htrace.Span{Description: "lc", TraceID: 1, SpanID: 1}))
	f, rcv := newTestFeed(t, Config{GroupID: "g"}, reader)

	lc := fxtest.NewLifecycle(t)
	RegisterFeedLifecycle(FeedLifecycleParams{Lifecycle: lc, Feed: f})

	require.NoError(t, lc.Start(context.Background()))
	require.Eventually(t, func() bool { return len(reader.committedOffsets()) == 1 }, 5*time.Second, time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, lc.Stop(stopCtx))

	assert.Len(t, rcv.received(), 1)
	select {
	case <-reader.closed:
	default:
		t.Fatal("reader was not closed on stop")
	}
}

func TestRegisterFeedLifecycle_DisabledAddsNoHooks(t *testing.T) {
	t.Parallel()

	f, err := NewSpanFeed(Config{}, &recordingReceiver{}, nil)
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	RegisterFeedLifecycle(FeedLifecycleParams{Lifecycle: lc, Feed: f})

	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Stop(context.Background()))
}
