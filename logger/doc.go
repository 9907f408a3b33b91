// Package logger provides the structured logger used across spanbridge.
//
// It wraps Uber's zap with a small map-based API so that the receiver, the
// backend initializer and the transports can log without importing zap
// directly:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "spanbridge",
//	})
//
//	log.Info("backend ready", nil, map[string]interface{}{
//		"collector": "collector.example.com:5150",
//	})
//
//	log.Error("backend initialization failed", err, nil)
//
// Entries are JSON encoded to stderr with ISO8601 timestamps and carry the
// process id and service name. When Config.EnableTracing is set, the
// ...WithContext variants add trace_id and span_id taken from the span in the
// context, if one is recording.
//
// # FX
//
//	app := fx.New(
//		fx.Supply(logger.Config{Level: logger.Info, ServiceName: "spanbridge"}),
//		logger.FXModule,
//	)
//
// FXModule provides *LoggerClient and the Logger interface and flushes the
// zap core when the application stops.
package logger
