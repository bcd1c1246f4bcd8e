// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL  string
	ListenAddr  string
	DBPath      string
	SecretKey   []byte // 32-byte AES key for the session store; nil disables persistence.
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. INVOICEPANEL_API_BASE_URL is required. INVOICEPANEL_SECRET_KEY is a
// 64-hex-digit AES-256 key; without it the panel works but sessions do not
// survive restarts. Optional variables with defaults:
// INVOICEPANEL_LISTEN_ADDR (127.0.0.1:8080), INVOICEPANEL_DB_PATH
// (invoicepanel.db), INVOICEPANEL_HTTP_TIMEOUT (0, meaning outgoing API
// calls have no deadline beyond the request context).
func Load() (*Config, error) {
	baseURL := os.Getenv("INVOICEPANEL_API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("INVOICEPANEL_API_BASE_URL is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("INVOICEPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "invoicepanel.db"
	if v, ok := os.LookupEnv("INVOICEPANEL_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("INVOICEPANEL_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("INVOICEPANEL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("INVOICEPANEL_SECRET_KEY must be 32 bytes (64 hex digits), got %d", len(key))
		}
		secretKey = key
	}

	var httpTimeout time.Duration
	if v, ok := os.LookupEnv("INVOICEPANEL_HTTP_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("INVOICEPANEL_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		httpTimeout = parsed
	}

	return &Config{
		APIBaseURL:  baseURL,
		ListenAddr:  listenAddr,
		DBPath:      dbPath,
		SecretKey:   secretKey,
		HTTPTimeout: httpTimeout,
	}, nil
}
