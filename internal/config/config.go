package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"RRGView/internal/loader"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Source     string `yaml:"source"` // "csv" or "yahoo"
		Path       string `yaml:"path"`
		DateColumn string `yaml:"date_column"`
		DateFormat string `yaml:"date_format"`
		Timeframe  string `yaml:"timeframe"`
		Period     int    `yaml:"period"` // bars of history loaded per symbol
	} `yaml:"data"`
	Chart struct {
		Benchmark     string  `yaml:"benchmark"`
		WatchlistFile string  `yaml:"watchlist_file"`
		Tail          int     `yaml:"tail"`
		Window        int     `yaml:"window"`
		MomentumLag   int     `yaml:"momentum_lag"`
		Scale         float64 `yaml:"scale"`
	} `yaml:"chart"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RRG_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("RRG_DATA_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("RRG_BENCHMARK"); v != "" {
		cfg.Chart.Benchmark = v
	}
	if v := os.Getenv("RRG_WATCHLIST_FILE"); v != "" {
		cfg.Chart.WatchlistFile = v
	}
	if v := os.Getenv("RRG_WATCH_CRON"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("RRG_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Data.Period = n
		}
	}

	// Defaults
	if cfg.Data.Source == "" {
		cfg.Data.Source = "csv"
	}
	if cfg.Data.Path == "" {
		cfg.Data.Path = "data/eod"
	}
	if cfg.Data.DateColumn == "" {
		cfg.Data.DateColumn = "Date"
	}
	if cfg.Data.Timeframe == "" {
		cfg.Data.Timeframe = "weekly"
	}
	if cfg.Data.Period == 0 {
		cfg.Data.Period = 52
	}
	if cfg.Chart.Tail == 0 {
		cfg.Chart.Tail = 4
	}
	if cfg.Chart.Window == 0 {
		cfg.Chart.Window = 14
	}
	if cfg.Chart.MomentumLag == 0 {
		cfg.Chart.MomentumLag = 1
	}
	if cfg.Chart.Scale == 0 {
		cfg.Chart.Scale = 1.0
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/rrgview.db"
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 30 16 * * 1-5"
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session.json"
	}

	return cfg, nil
}

// Validate checks the fields every command depends on.
func (c *Config) Validate() error {
	if c.Data.Source != "csv" && c.Data.Source != "yahoo" {
		return fmt.Errorf("data.source must be csv or yahoo, got %q", c.Data.Source)
	}
	if c.Data.Source == "csv" && c.Data.Path == "" {
		return fmt.Errorf("data.path is required for the csv source")
	}
	if !loader.ValidTimeframe(c.Data.Timeframe) {
		return fmt.Errorf("data.timeframe must be one of daily, weekly, monthly, quarterly")
	}
	if c.Chart.Window < 2 {
		return fmt.Errorf("chart.window must be at least 2")
	}
	if c.Chart.Tail < 1 {
		return fmt.Errorf("chart.tail must be at least 1")
	}
	if c.Chart.MomentumLag < 1 {
		return fmt.Errorf("chart.momentum_lag must be at least 1")
	}
	if c.Data.Period < c.Chart.Window {
		return fmt.Errorf("data.period (%d) must cover at least the smoothing window (%d)",
			c.Data.Period, c.Chart.Window)
	}
	return nil
}

// ValidateWatch checks the additional fields required by watch mode.
func (c *Config) ValidateWatch() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required for watch mode")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required for watch mode")
	}
	return nil
}
