package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientAdapterConfig_Defaults(t *testing.T) {
	t.Setenv("REGISTRY_ADDRESS", "")
	t.Setenv("REGISTRY_REQUEST_TIMEOUT", "")
	t.Setenv("REGISTRY_RETRIES", "")
	t.Setenv("REGISTRY_TOKEN", "")

	cfg, err := GetClientAdapterConfig()

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddress, cfg.HTTPAddress)
	assert.Equal(t, DefaultClientRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultClientRetries, cfg.Retries)
	assert.Empty(t, cfg.Token)
}

func TestGetClientAdapterConfig_FromEnv(t *testing.T) {
	t.Setenv("REGISTRY_ADDRESS", "https://registry.example.com")
	t.Setenv("REGISTRY_REQUEST_TIMEOUT", "3s")
	t.Setenv("REGISTRY_RETRIES", "5")
	t.Setenv("REGISTRY_TOKEN", "abc")

	cfg, err := GetClientAdapterConfig()

	require.NoError(t, err)
	assert.Equal(t, "https://registry.example.com", cfg.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.Retries)
	assert.Equal(t, "abc", cfg.Token)
}

func TestGetClientAdapterConfig_InvalidDuration(t *testing.T) {
	t.Setenv("REGISTRY_REQUEST_TIMEOUT", "soon")

	_, err := GetClientAdapterConfig()

	assert.Error(t, err)
}
