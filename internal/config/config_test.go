package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every INVOICEPANEL_ env var that Load() reads.
var allConfigKeys = []string{
	"INVOICEPANEL_API_BASE_URL",
	"INVOICEPANEL_LISTEN_ADDR",
	"INVOICEPANEL_DB_PATH",
	"INVOICEPANEL_SECRET_KEY",
	"INVOICEPANEL_HTTP_TIMEOUT",
}

// isolateConfigEnv saves and unsets all INVOICEPANEL_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INVOICEPANEL_API_BASE_URL", "https://api.acme.test/api")
	t.Setenv("INVOICEPANEL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("INVOICEPANEL_DB_PATH", "/tmp/test.db")
	t.Setenv("INVOICEPANEL_HTTP_TIMEOUT", "45s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.acme.test/api", cfg.APIBaseURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INVOICEPANEL_API_BASE_URL", "https://api.acme.test/api")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "invoicepanel.db", cfg.DBPath)
	assert.Nil(t, cfg.SecretKey)
	assert.Zero(t, cfg.HTTPTimeout)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVOICEPANEL_API_BASE_URL")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INVOICEPANEL_API_BASE_URL", "https://api.acme.test/api")
	t.Setenv("INVOICEPANEL_HTTP_TIMEOUT", "not-a-duration")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVOICEPANEL_HTTP_TIMEOUT")
}

func TestLoad_SecretKey_Valid(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INVOICEPANEL_API_BASE_URL", "https://api.acme.test/api")
	// 64 hex chars = 32 bytes
	t.Setenv("INVOICEPANEL_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Len(t, cfg.SecretKey, 32)
}

func TestLoad_SecretKey_TooShort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INVOICEPANEL_API_BASE_URL", "https://api.acme.test/api")
	t.Setenv("INVOICEPANEL_SECRET_KEY", "deadbeef")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVOICEPANEL_SECRET_KEY")
}

func TestLoad_SecretKey_NotHex(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("INVOICEPANEL_API_BASE_URL", "https://api.acme.test/api")
	// 64 chars but not valid hex
	t.Setenv("INVOICEPANEL_SECRET_KEY", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVOICEPANEL_SECRET_KEY")
}
