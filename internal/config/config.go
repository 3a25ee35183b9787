package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvLoggingLevel  = "INTROSPECT_LOGGING_LEVEL"
	EnvLoggingFormat = "INTROSPECT_LOGGING_FORMAT"
	EnvProxyMarker   = "INTROSPECT_PROXY_MARKER"
	EnvTraceEndpoint = "INTROSPECT_TRACE_ENDPOINT"
)

// Defaults applied when a variable is unset or invalid.
const (
	DefaultLogLevel    = "warning"
	DefaultLogFormat   = FormatText
	DefaultProxyMarker = "__"
)

// Supported log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the process-wide settings of the introspection library.
type Config struct {
	LogLevel    string // logrus level name
	LogFormat   string // FormatText or FormatJSON
	ProxyMarker string // type name marker of generated proxy wrappers

	// TraceEndpoint is the host:port of an OTLP HTTP collector. Tracing is disabled when empty.
	TraceEndpoint string
}

// Default returns the configuration used when nothing is set in the environment.
func Default() Config {
	return Config{
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		ProxyMarker: DefaultProxyMarker,
	}
}

// FromEnv reads the configuration from the environment. Empty variables keep their defaults
// and an unknown log format falls back to FormatText.
func FromEnv() Config {
	cfg := Default()

	if v, ok := os.LookupEnv(EnvLoggingLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLoggingFormat); ok && v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvProxyMarker); ok && v != "" {
		cfg.ProxyMarker = v
	}
	if v, ok := os.LookupEnv(EnvTraceEndpoint); ok {
		cfg.TraceEndpoint = strings.TrimSpace(v)
	}

	if cfg.LogFormat != FormatText && cfg.LogFormat != FormatJSON {
		cfg.LogFormat = DefaultLogFormat
	}

	return cfg
}

// Validate checks the settings that have a closed set of values.
func (c Config) Validate() error {
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: '%s': unknown log format", ErrInvalidConfig, c.LogFormat)
	}

	if c.LogLevel == "" {
		return fmt.Errorf("%w: empty log level", ErrInvalidConfig)
	}

	if c.ProxyMarker == "" {
		return fmt.Errorf("%w: empty proxy marker", ErrInvalidConfig)
	}

	return nil
}
