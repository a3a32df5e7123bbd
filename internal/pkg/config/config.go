package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Enforced floors for operator-supplied values. Values below the floor are
// raised with a warning instead of rejected.
const (
	minInterval     = 5 * time.Second
	defaultInterval = 10 * time.Second

	minStartupRetries     = 2
	defaultStartupRetries = 3

	defaultRowWaitTimeout  = 10 * time.Second
	defaultDateWaitTimeout = 20 * time.Second

	defaultOutputPath = "betting_data.json"
)

type Config struct {
	Scraper  ScraperConfig  `yaml:"scraper"`
	Output   OutputConfig   `yaml:"output"`
	Postgres PostgresConfig `yaml:"postgres"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ScraperConfig struct {
	BaseURL string `yaml:"base_url"`
	// Interval is the minimum delay between scrape cycles.
	Interval time.Duration `yaml:"interval"`
	// MaxRetries bounds browser startup attempts.
	MaxRetries      int           `yaml:"max_retries"`
	RowWaitTimeout  time.Duration `yaml:"row_wait_timeout"`
	DateWaitTimeout time.Duration `yaml:"date_wait_timeout"`
}

type OutputConfig struct {
	// Path of the JSON file rewritten with each cycle's betting lines.
	Path string `yaml:"path"`
	// Stdout additionally prints each cycle's lines as a JSON array.
	Stdout bool `yaml:"stdout"`
}

type PostgresConfig struct {
	// DSN enables the Postgres sink when non-empty.
	DSN string `yaml:"dsn"`
}

type TelegramConfig struct {
	// BotToken enables cycle-summary notifications when non-empty.
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config file and applies .env / environment overrides.
// A missing config file is not an error: the original deployment configured
// everything through the environment.
func Load(configPath string) (*Config, error) {
	// Best effort: a .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		slog.Info("Config file not found, using environment only", "path", configPath)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BASE_URL"); v != "" {
		c.Scraper.BaseURL = v
	}
	if v := os.Getenv("SCRAPE_INTERVAL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("SCRAPE_INTERVAL must be an integer number of seconds, ignoring", "value", v)
		} else {
			c.Scraper.Interval = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("MAX_RETRIES must be an integer, ignoring", "value", v)
		} else {
			c.Scraper.MaxRetries = n
		}
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			slog.Warn("TELEGRAM_CHAT_ID must be an integer, ignoring", "value", v)
		} else {
			c.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate applies defaults and floors once at startup. The scraper core
// receives the struct as already-validated input.
func (c *Config) Validate() error {
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper.base_url is required (or BASE_URL env var)")
	}
	if c.Scraper.Interval < minInterval {
		if c.Scraper.Interval > 0 {
			slog.Warn("scraper.interval is too low, raising",
				"configured", c.Scraper.Interval, "interval", defaultInterval)
		}
		c.Scraper.Interval = defaultInterval
	}
	if c.Scraper.MaxRetries < minStartupRetries {
		if c.Scraper.MaxRetries > 0 {
			slog.Warn("scraper.max_retries is too low, raising",
				"configured", c.Scraper.MaxRetries, "max_retries", defaultStartupRetries)
		}
		c.Scraper.MaxRetries = defaultStartupRetries
	}
	if c.Scraper.RowWaitTimeout <= 0 {
		c.Scraper.RowWaitTimeout = defaultRowWaitTimeout
	}
	if c.Scraper.DateWaitTimeout <= 0 {
		c.Scraper.DateWaitTimeout = defaultDateWaitTimeout
	}
	if c.Output.Path == "" {
		c.Output.Path = defaultOutputPath
	}
	return nil
}
