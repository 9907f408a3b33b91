package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/aalemi-dev/spanbridge/config"
)

func TestOptionsValidate(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.NoError(t, fx.ValidateApp(options(cfg)...))

	cfg.SchemaRegistry.Enabled = true
	cfg.SchemaRegistry.URL = "http://registry:8081"
	require.NoError(t, fx.ValidateApp(options(cfg)...))
}
