package ingest

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/spanbridge/receiver"
)

func TestFXModule_ServesSpans(t *testing.T) {
	t.Parallel()
	rcv := &recordingReceiver{}

	var srv *Server
	app := fxtest.New(t,
		FXModule,
		fx.Supply(Config{Enabled: true, Address: "127.0.0.1:0"}),
		fx.Provide(func() receiver.SpanReceiver { return rcv }),
		fx.Populate(&srv),
	)
	app.RequireStart()
	defer app.RequireStop()

	resp, err := http.Post("http://"+srv.Addr()+SpansPath, "application/json", strings.NewReader(readRowJSON))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Len(t, rcv.received(), 1)
}

func TestFXModule_DisabledDoesNotListen(t *testing.T) {
	t.Parallel()

	var srv *Server
	app := fxtest.New(t,
		FXModule,
		fx.Supply(Config{Address: "127.0.0.1:0"}),
		fx.Provide(func() receiver.SpanReceiver { return &recordingReceiver{} }),
		fx.Populate(&srv),
	)
	app.RequireStart()
	app.RequireStop()

	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestRegisterServerLifecycle_BindFailure(t *testing.T) {
	t.Parallel()
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	srv := NewServer(Config{Enabled: true, Address: taken.Addr().String()}, &recordingReceiver{}, nil)
	lc := fxtest.NewLifecycle(t)
	RegisterServerLifecycle(lc, srv)

	assert.ErrorContains(t, lc.Start(context.Background()), "failed to listen")
}
