package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LISTEN_ADDR", "DATASYNC_BACKEND_URL", "DATASYNC_GLOBAL_QUERY_URL", "BACKEND_TIMEOUT",
		"META_DB_PATH", "TLS_CERT_FILE", "TLS_KEY_FILE", "LOG_LEVEL", "ENV", "SYNC_SCHEDULE",
		"API_PROXY_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "ALLOW_INSECURE_HTTP",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, "http://localhost:8080/query/global", cfg.GlobalQueryURL)
	assert.Equal(t, 60*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "datasync_console.sqlite", cfg.MetaDBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.InDelta(t, 50.0, cfg.RateLimitRPS, 0.001)
	assert.Equal(t, 100, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.ProxyEnabled)
	assert.Empty(t, cfg.SyncSchedule)
	assert.Len(t, cfg.Warnings, 1)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DATASYNC_BACKEND_URL", "http://datasync:8080/")
	t.Setenv("DATASYNC_GLOBAL_QUERY_URL", "http://federation:8081/query/global")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("META_DB_PATH", "/tmp/console.sqlite")
	t.Setenv("SYNC_SCHEDULE", "@every 15m")
	t.Setenv("API_PROXY_ENABLED", "off")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "http://datasync:8080", cfg.BackendURL)
	assert.Equal(t, "http://federation:8081/query/global", cfg.GlobalQueryURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "/tmp/console.sqlite", cfg.MetaDBPath)
	assert.Equal(t, "@every 15m", cfg.SyncSchedule)
	assert.False(t, cfg.ProxyEnabled)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{"bad_timeout", "BACKEND_TIMEOUT", "soon", "BACKEND_TIMEOUT"},
		{"bad_scheme", "DATASYNC_BACKEND_URL", "ftp://x", "scheme must be http or https"},
		{"missing_host", "DATASYNC_BACKEND_URL", "http://", "missing host"},
		{"bad_global_url", "DATASYNC_GLOBAL_QUERY_URL", "localhost:8081", "DATASYNC_GLOBAL_QUERY_URL"},
		{"tls_pair", "TLS_CERT_FILE", "/tmp/cert.pem", "TLS_KEY_FILE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromEnv_Production(t *testing.T) {
	t.Run("wildcard_cors_rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("ALLOW_INSECURE_HTTP", "true")
		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CORS wildcard")
	})

	t.Run("tls_required", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://console.example")
		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TLS_CERT_FILE")
	})

	t.Run("wildcard_allowed_without_proxy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("ALLOW_INSECURE_HTTP", "true")
		t.Setenv("API_PROXY_ENABLED", "false")
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]string{"debug": "DEBUG", "WARNING": "WARN", "error": "ERROR", "": "INFO"} {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel().String(), in)
	}
}

func TestLoadDotEnv_FileNotFound(t *testing.T) {
	require.NoError(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nTEST_DS_KEY=test_value\nexport TEST_DS_QUOTED='quoted value'\nnot a pair\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv("TEST_DS_KEY", "")
	t.Setenv("TEST_DS_QUOTED", "")

	require.NoError(t, LoadDotEnv(envFile))

	assert.Equal(t, "test_value", os.Getenv("TEST_DS_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("TEST_DS_QUOTED"))
}

func TestLoadDotEnv_EnvVarPrecedence(t *testing.T) {
	t.Setenv("TEST_DS_PRECEDENCE", "from_env")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_DS_PRECEDENCE=from_file\n"), 0o600))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from_env", os.Getenv("TEST_DS_PRECEDENCE"))
}
