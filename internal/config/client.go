package config

import "time"

// ClientAdapter configures the command-line client's connection to the
// registry server.
type ClientAdapter struct {
	// HTTPAddress is the server base URL or "host:port".
	// Env: REGISTRY_ADDRESS
	HTTPAddress string `env:"REGISTRY_ADDRESS"`

	// RequestTimeout bounds every request, retries included per attempt.
	// Env: REGISTRY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REGISTRY_REQUEST_TIMEOUT"`

	// Retries is how many times idempotent failures (transport errors,
	// 502, 503, 504) are retried.
	// Env: REGISTRY_RETRIES
	Retries int `env:"REGISTRY_RETRIES"`

	// Token is the session token sent with authenticated commands.
	// Env: REGISTRY_TOKEN
	Token string `env:"REGISTRY_TOKEN"`
}

// Client defaults.
const (
	DefaultClientRequestTimeout = 15 * time.Second
	DefaultClientRetries        = 2
)

// GetClientAdapterConfig reads the client settings from the environment and
// fills unset fields with defaults. Command-line flags are applied by the
// caller on top of the result.
func GetClientAdapterConfig() (ClientAdapter, error) {
	var cfg ClientAdapter
	if err := parseEnv(&cfg); err != nil {
		return ClientAdapter{}, err
	}

	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultClientRequestTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultClientRetries
	}

	return cfg, nil
}
