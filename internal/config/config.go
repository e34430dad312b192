// Package config reads server settings from the environment.
//
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     int    `env:"PORT" env-default:"8080" env-description:"HTTP listen port"`
	DBPath   string `env:"DB_PATH" env-default:"data/codeclass.db" env-description:"SQLite database file, or :memory:"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`

	JWTSecret string `env:"JWT_SECRET" env-description:"HMAC secret shared with the auth backend; empty disables sign-in"`
	JWTIssuer string `env:"JWT_ISSUER" env-default:"codeclass-auth" env-description:"expected iss claim"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY" env-description:"language model API key; empty disables chat"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta" env-description:"generateContent API root"`
	GeminiModel   string `env:"GEMINI_MODEL" env-default:"gemini-1.5-flash-latest" env-description:"model name"`

	ExecuteDelay         time.Duration `env:"EXECUTE_DELAY" env-default:"0s" env-description:"cosmetic wait before returning a run result"`
	ExecuteMaxConcurrent int           `env:"EXECUTE_MAX_CONCURRENT" env-default:"64" env-description:"runs in flight at once; 0 means unlimited"`
	ChatRatePerMinute    int           `env:"CHAT_RATE_PER_MINUTE" env-default:"10" env-description:"chat requests per client IP per minute"`
	ChatBurst            int           `env:"CHAT_BURST" env-default:"3" env-description:"chat requests allowed back to back"`
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	if c.ExecuteDelay < 0 {
		return fmt.Errorf("config: EXECUTE_DELAY must not be negative")
	}
	if c.ExecuteMaxConcurrent < 0 {
		return fmt.Errorf("config: EXECUTE_MAX_CONCURRENT must not be negative")
	}
	if c.ChatRatePerMinute <= 0 || c.ChatBurst <= 0 {
		return fmt.Errorf("config: CHAT_RATE_PER_MINUTE and CHAT_BURST must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Usage describes every variable, for -help output.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
