package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"DOMAIN", "LISTEN_PORT", "TLS_ENABLED", "TLS_PORT", "TLS_STORAGE_PATH",
		"ACME_EMAIL", "ACME_STAGING", "CF_API_TOKEN", "GRPC_BACKEND",
		"MAX_CONNS", "BUFFER_SIZE", "PPROF_ENABLED", "PPROF_PORT", "DASHBOARD_ENABLED",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Domain())
	assert.Equal(t, "3000", cfg.ListenPort())
	assert.False(t, cfg.TLSEnabled())
	assert.Equal(t, "3443", cfg.TLSPort())
	assert.Equal(t, "admin@localhost", cfg.ACMEEmail())
	assert.Equal(t, "", cfg.GRPCBackend())
	assert.Equal(t, 0, cfg.MaxConns())
	assert.Equal(t, 32768, cfg.BufferSize())
	assert.False(t, cfg.PprofEnabled())
	assert.False(t, cfg.DashboardEnabled())
}

func TestParse_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOMAIN", "gw.example.com")
	t.Setenv("LISTEN_PORT", "8080")
	t.Setenv("GRPC_BACKEND", "localhost:50051")
	t.Setenv("MAX_CONNS", "128")
	t.Setenv("DASHBOARD_ENABLED", "true")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "gw.example.com", cfg.Domain())
	assert.Equal(t, "8080", cfg.ListenPort())
	assert.Equal(t, "localhost:50051", cfg.GRPCBackend())
	assert.Equal(t, 128, cfg.MaxConns())
	assert.True(t, cfg.DashboardEnabled())
	assert.Equal(t, "admin@gw.example.com", cfg.ACMEEmail())
}

func TestParse_TLSRequiresToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLS_ENABLED", "true")

	_, err := parse()
	assert.Error(t, err)

	t.Setenv("CF_API_TOKEN", "token")
	cfg, err := parse()
	require.NoError(t, err)
	assert.True(t, cfg.TLSEnabled())
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad max conns", key: "MAX_CONNS", value: "lots"},
		{name: "negative max conns", key: "MAX_CONNS", value: "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := parse()
			assert.Error(t, err)
		})
	}
}

func TestParse_BufferSizeFallback(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "too small", value: "16", want: 4096},
		{name: "not a number", value: "big", want: 4096},
		{name: "valid", value: "65536", want: 65536},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BUFFER_SIZE", tc.value)

			cfg, err := parse()
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.BufferSize())
		})
	}
}
