package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"zenvor/internal/pkg/telemetry"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "file:zenvor.db?_time_format=sqlite"
	defaultAdminToken      = "change-me-admin-token"
	defaultReadTimeout     = "15s"
	defaultWriteTimeout    = "60s"
	defaultShutdownTimeout = "10s"
	defaultChatProvider    = ProviderAnthropic
	defaultAnthropicModel  = "claude-haiku-4-5"
	defaultGeminiModel     = "gemini-2.5-flash"
	defaultChatMaxTokens   = "1024"
	defaultServiceName     = "zenvor-intake"
)

// Config holds the runtime settings of the API process.
type Config struct {
	AppEnv             string
	HTTPAddr           string
	DatabaseURL        string
	AdminToken         string
	CORSAllowedOrigins []string
	LogLevel           string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Chat      ChatConfig
	Telemetry telemetry.Settings
}

// Chat providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ChatConfig configures the chat proxy. An empty APIKey disables it.
type ChatConfig struct {
	Provider  string
	APIKey    string
	Model     string
	MaxTokens int64
	// BaseURL overrides the provider endpoint. Empty means the SDK default.
	BaseURL string
}

func (c ChatConfig) Enabled() bool {
	return c.APIKey != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.AdminToken = strings.TrimSpace(getEnv("ADMIN_TOKEN", defaultAdminToken))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))

	var err error
	cfg.ReadTimeout, err = parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		return nil, err
	}
	cfg.WriteTimeout, err = parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout, err = parseDurationEnv("HTTP_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.Chat.Provider = strings.ToLower(strings.TrimSpace(getEnv("CHAT_PROVIDER", defaultChatProvider)))
	defaultModel := defaultAnthropicModel
	switch cfg.Chat.Provider {
	case ProviderAnthropic:
		cfg.Chat.APIKey = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case ProviderGemini:
		cfg.Chat.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		defaultModel = defaultGeminiModel
	default:
		return nil, fmt.Errorf("invalid CHAT_PROVIDER value %q: want %s or %s", cfg.Chat.Provider, ProviderAnthropic, ProviderGemini)
	}
	cfg.Chat.Model = strings.TrimSpace(getEnv("CHAT_MODEL", defaultModel))
	cfg.Chat.BaseURL = strings.TrimSpace(os.Getenv("CHAT_BASE_URL"))
	maxTokens := strings.TrimSpace(getEnv("CHAT_MAX_TOKENS", defaultChatMaxTokens))
	cfg.Chat.MaxTokens, err = strconv.ParseInt(maxTokens, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_MAX_TOKENS value %q: %w", maxTokens, err)
	}

	cfg.Telemetry = telemetry.Settings{
		Enabled:      parseBoolEnv("OTEL_METRICS_ENABLED", "false"),
		Stdout:       parseBoolEnv("OTEL_METRICS_STDOUT", "false"),
		OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		ServiceName:  strings.TrimSpace(getEnv("OTEL_SERVICE_NAME", defaultServiceName)),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT must be > 0")
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.Chat.MaxTokens <= 0 {
		return fmt.Errorf("CHAT_MAX_TOKENS must be > 0")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.AdminToken, defaultAdminToken) {
			return fmt.Errorf("in prod/release ADMIN_TOKEN must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return fmt.Errorf("in prod/release DATABASE_URL must point at PostgreSQL")
		}
	}

	return nil
}

// IsProdLike reports whether env names a production deployment.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
