package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	providerGemini = "gemini"
	providerGroq   = "groq"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"local"`
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	AI       AIConfig
	Forecast ForecastConfig
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"forecast"`
	Password        string        `env:"DB_PASSWORD" envDefault:"forecast"`
	Name            string        `env:"DB_NAME" envDefault:"balance_forecast"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"balance-forecast"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
}

// AIConfig описывает LLM-провайдера прогнозного оракула.
// Пустые BaseURL и Model заполняются значениями выбранного провайдера.
type AIConfig struct {
	Provider           string        `env:"AI_PROVIDER" envDefault:"gemini"`
	APIKey             string        `env:"AI_API_KEY"`
	GeminiAPIKey       string        `env:"GEMINI_API_KEY"`
	BaseURL            string        `env:"AI_BASE_URL"`
	Model              string        `env:"AI_MODEL"`
	Timeout            time.Duration `env:"AI_TIMEOUT" envDefault:"20s"`
	RateLimitPerMinute int           `env:"AI_RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int           `env:"AI_RATE_LIMIT_BURST" envDefault:"10"`
	MaxOutputTokens    int           `env:"AI_MAX_OUTPUT_TOKENS" envDefault:"4096"`
}

type ForecastConfig struct {
	LookbackMonths int     `env:"FORECAST_LOOKBACK_MONTHS" envDefault:"6"`
	BlendWeight    float64 `env:"FORECAST_BLEND_WEIGHT" envDefault:"0.75"`
	Currency       string  `env:"FORECAST_CURRENCY" envDefault:"RUB"`
}

// Load загружает конфигурацию приложения из окружения и .env.
func Load() (Config, error) {
	cfg := Config{}

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.AI.applyProviderDefaults()
	cfg.Forecast.Currency = strings.ToUpper(strings.TrimSpace(cfg.Forecast.Currency))

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *AIConfig) applyProviderDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	baseURL, model := "https://generativelanguage.googleapis.com/v1beta", "gemini-1.5-flash"
	if c.Provider == providerGroq {
		baseURL, model = "https://api.groq.com/openai/v1", "llama-3.1-8b-instant"
	}

	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.APIKey == "" && c.Provider == providerGemini {
		c.APIKey = c.GeminiAPIKey
	}
}

// DSN возвращает строку подключения к базе данных.
func (c DatabaseConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return dsn.String()
}

func (c Config) validate() error {
	positive := []struct {
		name  string
		value int64
	}{
		{"SERVER_PORT", int64(c.Server.Port)},
		{"DB_PORT", int64(c.Database.Port)},
		{"DB_MAX_OPEN_CONNS", int64(c.Database.MaxOpenConns)},
		{"JWT_ACCESS_TTL", int64(c.Auth.AccessTokenTTL)},
		{"AI_TIMEOUT", int64(c.AI.Timeout)},
		{"AI_RATE_LIMIT_PER_MINUTE", int64(c.AI.RateLimitPerMinute)},
		{"AI_RATE_LIMIT_BURST", int64(c.AI.RateLimitBurst)},
		{"AI_MAX_OUTPUT_TOKENS", int64(c.AI.MaxOutputTokens)},
		{"FORECAST_LOOKBACK_MONTHS", int64(c.Forecast.LookbackMonths)},
	}
	for _, field := range positive {
		if field.value <= 0 {
			return fmt.Errorf("%s must be greater than 0", field.name)
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"DB_HOST", c.Database.Host},
		{"DB_USER", c.Database.User},
		{"DB_NAME", c.Database.Name},
		{"JWT_SECRET", c.Auth.JWTSecret},
		{"FORECAST_CURRENCY", c.Forecast.Currency},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS cannot exceed DB_MAX_OPEN_CONNS")
	}

	if c.AI.Provider != providerGemini && c.AI.Provider != providerGroq {
		return fmt.Errorf("AI_PROVIDER must be %s or %s", providerGemini, providerGroq)
	}

	if c.Forecast.BlendWeight <= 0 || c.Forecast.BlendWeight > 1 {
		return fmt.Errorf("FORECAST_BLEND_WEIGHT must be within (0, 1]")
	}

	return nil
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
