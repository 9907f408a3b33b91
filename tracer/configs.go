package tracer

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Defaults mirror the options the bridge has always been deployed with.
const (
	DefaultCollectorPort     = 5150
	DefaultCollectorProtocol = "http"
	DefaultCollectorPath     = "/v1/traces"
	DefaultComponentName     = "HBase tracer"
	DefaultVerbosity         = 4

	// AccessTokenHeader carries Config.AccessToken on every export request.
	AccessTokenHeader = "lightstep-access-token"
)

// Verbosity levels understood by the backend.
const (
	// VerbositySilent logs nothing beyond initialization failures.
	VerbositySilent = 0

	// VerbosityErrors also logs every export error reported by the SDK.
	VerbosityErrors = 1

	// VerbosityDebug also logs every exported span at debug level.
	VerbosityDebug = 4
)

// Config holds the connection parameters of the downstream trace backend.
//
// All fields can be loaded from the environment with the SPANBRIDGE_ prefix,
// e.g. SPANBRIDGE_COLLECTOR_HOST.
type Config struct {
	// AccessToken authenticates the bridge with the collector. It is sent in
	// the AccessTokenHeader header; leave empty for collectors that do not
	// authenticate.
	AccessToken string `yaml:"access_token" envconfig:"ACCESS_TOKEN"`

	// CollectorHost is the collector's host name or IP address. Required.
	CollectorHost string `yaml:"collector_host" envconfig:"COLLECTOR_HOST"`

	// CollectorPort is the collector's TCP port, 1..65535.
	CollectorPort int `yaml:"collector_port" envconfig:"COLLECTOR_PORT" default:"5150"`

	// CollectorProtocol is "http" or "https".
	CollectorProtocol string `yaml:"collector_protocol" envconfig:"COLLECTOR_PROTOCOL" default:"http"`

	// CollectorPath is the URL path spans are posted to. Defaults to the
	// standard OTLP/HTTP traces path.
	CollectorPath string `yaml:"collector_path" envconfig:"COLLECTOR_PATH" default:"/v1/traces"`

	// ComponentName becomes the service.name resource attribute of every
	// forwarded span.
	ComponentName string `yaml:"component_name" envconfig:"COMPONENT_NAME" default:"HBase tracer"`

	// Verbosity selects how much the backend reports about itself.
	// See VerbositySilent, VerbosityErrors and VerbosityDebug.
	Verbosity int `yaml:"verbosity" envconfig:"VERBOSITY" default:"4"`

	// AppEnv sets the deployment.environment resource attribute when non-empty.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`
}

// Endpoint returns the collector URL described by the config.
//
// It fails with ErrInvalidProtocol for a protocol other than http or https
// and with ErrInvalidAddress for an empty or malformed host or a port outside
// 1..65535.
func (c Config) Endpoint() (*url.URL, error) {
	protocol := strings.ToLower(c.CollectorProtocol)
	if protocol != "http" && protocol != "https" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProtocol, c.CollectorProtocol)
	}

	if c.CollectorHost == "" {
		return nil, fmt.Errorf("%w: collector host is empty", ErrInvalidAddress)
	}

	if c.CollectorPort < 1 || c.CollectorPort > 65535 {
		return nil, fmt.Errorf("%w: collector port %d out of range", ErrInvalidAddress, c.CollectorPort)
	}

	path := c.CollectorPath
	if path == "" {
		path = DefaultCollectorPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	raw := protocol + "://" + net.JoinHostPort(c.CollectorHost, strconv.Itoa(c.CollectorPort)) + path
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if u.Hostname() != c.CollectorHost {
		return nil, fmt.Errorf("%w: malformed collector host %q", ErrInvalidAddress, c.CollectorHost)
	}

	return u, nil
}

// Validate reports whether the config describes a usable collector address.
func (c Config) Validate() error {
	_, err := c.Endpoint()
	return err
}
