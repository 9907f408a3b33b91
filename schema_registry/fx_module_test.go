package schema_registry

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/spanbridge/kafka"
)

func TestFXModule(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(newFakeRegistry())
	defer server.Close()

	var (
		registry Registry
		decoder  kafka.Decoder
	)
	app := fxtest.New(t,
		FXModule,
		fx.Supply(Config{Enabled: true, URL: server.URL}),
		fx.Populate(&registry, &decoder),
	)
	app.RequireStart()
	app.RequireStop()

	assert.IsType(t, &Client{}, registry)
	assert.IsType(t, &SpanDecoder{}, decoder)
}

func TestFXModule_MissingURL(t *testing.T) {
	t.Parallel()

	app := fx.New(
		FXModule,
		fx.NopLogger,
		fx.Supply(Config{Enabled: true}),
		fx.Invoke(func(Registry) {}),
	)
	assert.ErrorContains(t, app.Err(), ErrMissingURL.Error())
}
