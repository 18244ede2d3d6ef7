package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"

	DefaultHost          = "0.0.0.0"
	DefaultPort          = "8071"
	DefaultTransport     = TransportSSE
	DefaultPublicKeyFile = "public_key.pem"
	DefaultPageSize      = 20
)

// Config collects every externally supplied setting for the server.
// Nothing here is hardcoded into the adapters.
type Config struct {
	NearestURL    string
	SearchURL     string
	Host          string
	Port          string
	Transport     string
	IssuerURL     string
	Audience      string
	PublicKeyFile string
	PageSize      int
}

// Load reads configuration from the environment.
// NEAREST_API_URL and SEARCH_API_URL are required.
func Load() (Config, error) {
	cfg := Config{
		NearestURL:    os.Getenv("NEAREST_API_URL"),
		SearchURL:     os.Getenv("SEARCH_API_URL"),
		Host:          getEnv("MCP_HOST", DefaultHost),
		Port:          getEnv("MCP_PORT", DefaultPort),
		Transport:     getEnv("MCP_TRANSPORT", DefaultTransport),
		IssuerURL:     os.Getenv("DASHBOARD_ISSUER_URL"),
		Audience:      os.Getenv("DASHBOARD_AUDIENCE"),
		PublicKeyFile: getEnv("PUBLIC_KEY_FILE", DefaultPublicKeyFile),
		PageSize:      DefaultPageSize,
	}

	if v := os.Getenv("SEARCH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid SEARCH_PAGE_SIZE %q", v)
		}
		cfg.PageSize = n
	}

	if cfg.NearestURL == "" || cfg.SearchURL == "" {
		return Config{}, errors.New("NEAREST_API_URL and SEARCH_API_URL must be set")
	}

	if cfg.Transport != TransportSSE && cfg.Transport != TransportStdio {
		return Config{}, fmt.Errorf("unsupported transport %q (expected %q or %q)",
			cfg.Transport, TransportSSE, TransportStdio)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
