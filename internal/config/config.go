package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN" env-required:"true"`
	DBDSN         string `env:"DB_DSN" env-required:"true"`
	Environment   string `env:"ENV" env-default:"development"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`

	MigrationsPath string `env:"MIGRATIONS_PATH" env-default:"migrations"`

	// GridDays количество дней в сетке доступности и оплат
	GridDays int `env:"GRID_DAYS" env-default:"7"`

	// CompletionInterval как часто прошедшие занятия помечаются проведёнными
	CompletionInterval time.Duration `env:"COMPLETION_INTERVAL" env-default:"1h"`

	// Timezone часовой пояс центра, в нём задаются даты и время занятий
	Timezone string `env:"TIMEZONE" env-default:"UTC"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.GridDays <= 0 {
		return nil, fmt.Errorf("GRID_DAYS must be positive, got %d", cfg.GridDays)
	}

	if cfg.CompletionInterval <= 0 {
		return nil, fmt.Errorf("COMPLETION_INTERVAL must be positive, got %s", cfg.CompletionInterval)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &cfg, nil
}

// Location часовой пояс из TIMEZONE, проверенный при загрузке
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
