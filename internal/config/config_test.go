package config_test

import (
	"testing"

	"github.com/anoideaopen/introspect/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(config.EnvLoggingLevel, "")
	t.Setenv(config.EnvLoggingFormat, "")
	t.Setenv(config.EnvProxyMarker, "")
	t.Setenv(config.EnvTraceEndpoint, "")

	cfg := config.FromEnv()
	assert.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvLoggingLevel, " DEBUG ")
	t.Setenv(config.EnvLoggingFormat, "JSON")
	t.Setenv(config.EnvProxyMarker, "Proxy")
	t.Setenv(config.EnvTraceEndpoint, " localhost:4318 ")

	cfg := config.FromEnv()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.FormatJSON, cfg.LogFormat)
	assert.Equal(t, "Proxy", cfg.ProxyMarker)
	assert.Equal(t, "localhost:4318", cfg.TraceEndpoint)
}

func TestFromEnvUnknownFormat(t *testing.T) {
	t.Setenv(config.EnvLoggingFormat, "xml")

	cfg := config.FromEnv()
	assert.Equal(t, config.FormatText, cfg.LogFormat)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "default", cfg: config.Default()},
		{name: "unknown format", cfg: config.Config{LogLevel: "info", LogFormat: "yaml", ProxyMarker: "__"}, wantErr: true},
		{name: "empty level", cfg: config.Config{LogFormat: config.FormatText, ProxyMarker: "__"}, wantErr: true},
		{name: "empty marker", cfg: config.Config{LogLevel: "info", LogFormat: config.FormatJSON}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, config.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}
