package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "ENV", "HTTP_ADDR", "DATABASE_URL", "ADMIN_TOKEN", "CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
		"CHAT_PROVIDER", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "CHAT_MODEL", "CHAT_MAX_TOKENS", "CHAT_BASE_URL",
		"OTEL_METRICS_ENABLED", "OTEL_METRICS_STDOUT", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, int64(1024), cfg.Chat.MaxTokens)
	assert.Equal(t, ProviderAnthropic, cfg.Chat.Provider)
	assert.Equal(t, "claude-haiku-4-5", cfg.Chat.Model)
	assert.False(t, cfg.Chat.Enabled())
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://zenvor.ai, https://admin.zenvor.ai,,")
	t.Setenv("HTTP_WRITE_TIMEOUT", "2m")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("OTEL_METRICS_ENABLED", "yes")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://zenvor.ai", "https://admin.zenvor.ai"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2*time.Minute, cfg.WriteTimeout)
	assert.True(t, cfg.Chat.Enabled())
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4318", cfg.Telemetry.OTLPEndpoint)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "HTTP_READ_TIMEOUT")

	clearEnv(t)
	t.Setenv("CHAT_MAX_TOKENS", "0")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "CHAT_MAX_TOKENS")
}

func TestFromEnvProdRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://zenvor@db/zenvor")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "ADMIN_TOKEN")

	t.Setenv("ADMIN_TOKEN", "s3cr3t")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)

	t.Setenv("DATABASE_URL", "file:prod.db")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "PostgreSQL")
}

func TestFromEnvChatProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAT_PROVIDER", "Gemini")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ignored")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Chat.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Chat.Model)
	assert.False(t, cfg.Chat.Enabled())

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Chat.Enabled())

	t.Setenv("CHAT_PROVIDER", "openai")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "CHAT_PROVIDER")
}
