package logger

// Log level names accepted in Config.Level.
const (
	// Debug logs everything, including the JSON body of every received span.
	Debug = "debug"

	// Info logs backend initialization steps and transport lifecycle events.
	Info = "info"

	// Warning logs only recoverable problems, such as undecodable feed messages.
	Warning = "warning"

	// Error logs only failures, such as a backend that could not be constructed.
	Error = "error"
)

// Config defines the configuration for the bridge logger.
type Config struct {
	// Level is the minimum level written. Unknown values fall back to "info".
	//
	// Environment variable: SPANBRIDGE_LOG_LEVEL
	Level string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`

	// EnableTracing adds trace_id and span_id fields to entries logged with a
	// context that carries a recording span.
	//
	// Environment variable: SPANBRIDGE_LOG_ENABLE_TRACING
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOG_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"spanbridge"`

	// CallerSkip is the number of stack frames skipped when reporting the caller.
	// Use 1 when calling the logger directly and 2 when calling it through one
	// additional wrapper. Values <= 0 default to 1.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOG_CALLER_SKIP"`
}
