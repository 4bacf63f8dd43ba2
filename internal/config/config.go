package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string   `env:"ADDR" envDefault:":8080"`
	DBPath        string   `env:"DB_PATH" envDefault:"festival.db"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`
	AdminPassword string   `env:"ADMIN_PASSWORD" envDefault:"admin123"` // change in production
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:","`
	PublicBaseURL string   `env:"PUBLIC_BASE_URL"`

	InFlightTTL   time.Duration `env:"INFLIGHT_TTL" envDefault:"15s"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`

	TelegramToken  string `env:"TG_BOT_TOKEN"`
	TelegramChatID int64  `env:"TG_OPS_CHAT_ID"`

	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return nil, fmt.Errorf("TG_OPS_CHAT_ID is required when TG_BOT_TOKEN is set")
	}
	if (cfg.SheetsCredentialsFile == "") != (cfg.SheetsSpreadsheetID == "") {
		return nil, fmt.Errorf("SHEETS_CREDENTIALS_FILE and SHEETS_SPREADSHEET_ID must be set together")
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) SheetsEnabled() bool   { return c.SheetsSpreadsheetID != "" }
func (c *Config) TelegramEnabled() bool { return c.TelegramToken != "" }
