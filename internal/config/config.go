package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Scan holds the rule and universe parameters of the breakout scanner.
type Scan struct {
	TickersFile       string  `yaml:"tickers_file" validate:"required"`
	DaysBack          int     `yaml:"days_back" validate:"gt=0"`
	BatchSize         int     `yaml:"batch_size" validate:"gt=0"`
	Workers           int     `yaml:"workers" validate:"gt=0"`
	MinBars           int     `yaml:"min_bars" validate:"gt=0"`
	MinPrice          float64 `yaml:"min_price" validate:"gte=0"`
	MinAvgVolume      float64 `yaml:"min_avg_volume" validate:"gte=0"`
	MinRelativeVolume float64 `yaml:"min_relative_volume" validate:"gte=0"`
	VolumeLookback    int     `yaml:"volume_lookback" validate:"gt=0"`
	WinRateThreshold  float64 `yaml:"win_rate_threshold" validate:"gte=0,lte=100"`
	Horizon           int     `yaml:"horizon" validate:"gt=0"`
	SMAFastPeriod     int     `yaml:"sma_fast_period" validate:"gt=0"`
	SMASlowPeriod     int     `yaml:"sma_slow_period" validate:"gt=0"`
	DirectionalPeriod int     `yaml:"directional_period" validate:"gt=0"`
	TideBenchmark     string  `yaml:"tide_benchmark"`
	TidePeriod        int     `yaml:"tide_period" validate:"gt=0"`
	TideDaysBack      int     `yaml:"tide_days_back" validate:"gt=0"`
}

// Sizing holds capital allocation and bracket parameters.
type Sizing struct {
	MaxCandidates      int     `yaml:"max_candidates" validate:"gt=0"`
	MaxSlotCash        float64 `yaml:"max_slot_cash" validate:"gt=0"`
	PDTEquityThreshold float64 `yaml:"pdt_equity_threshold" validate:"gte=0"`
	PDTDayTradeLimit   int     `yaml:"pdt_day_trade_limit" validate:"gte=0"`
	TargetPct          float64 `yaml:"target_pct" validate:"gt=0,lt=1"`
	StopPct            float64 `yaml:"stop_pct" validate:"gt=0,lt=1"`
	TickDecimals       int     `yaml:"tick_decimals" validate:"gte=0"`
}

// Alpaca holds endpoint overrides; credentials come from the environment.
type Alpaca struct {
	DataBaseURL    string `yaml:"data_base_url"`
	TradingBaseURL string `yaml:"trading_base_url"`
}

// Email holds the SMTP endpoint; credentials come from the environment.
// An empty host disables the email report.
type Email struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Schedule holds the cron expression and the execution window gate.
type Schedule struct {
	ScanCron      string `yaml:"scan_cron" validate:"required"`
	Timezone      string `yaml:"timezone" validate:"required"`
	WindowStart   string `yaml:"window_start" validate:"required"`   // "15:45"
	WindowCutoff  string `yaml:"window_cutoff" validate:"required"`  // "15:59"
	MaxWaitMinute int    `yaml:"max_wait_minutes" validate:"gte=0"`  // wrong-DST preventer
}

// Secrets are environment-only values, never written to YAML.
type Secrets struct {
	AlpacaAPIKey    string `envconfig:"ALPACA_API_KEY"`
	AlpacaSecretKey string `envconfig:"ALPACA_SECRET_KEY"`
	EmailUser       string `envconfig:"EMAIL_USER"`
	EmailPass       string `envconfig:"EMAIL_PASS"`
	EmailReceiver   string `envconfig:"EMAIL_RECEIVER"`
}

// Config holds all application configuration.
type Config struct {
	App struct {
		LogLevel    string `yaml:"log_level"`
		MetricsAddr string `yaml:"metrics_addr"`
	} `yaml:"app"`
	Scan     Scan     `yaml:"scan"`
	Sizing   Sizing   `yaml:"sizing"`
	Alpaca   Alpaca   `yaml:"alpaca"`
	Email    Email    `yaml:"email"`
	Schedule Schedule `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Secrets Secrets `yaml:"-"`
}

// Load reads config from a YAML file, applies environment overrides and
// defaults, and hydrates secrets from the environment.
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
	if v := os.Getenv("TICKERS_FILE"); v != "" {
		cfg.Scan.TickersFile = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WIN_RATE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.WinRateThreshold = f
		}
	}
	if v := os.Getenv("MAX_SLOT_CASH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Sizing.MaxSlotCash = f
		}
	}

	cfg.applyDefaults()

	if err := envconfig.Process("", &cfg.Secrets); err != nil {
		return nil, fmt.Errorf("process secrets: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Scan.TickersFile == "" {
		c.Scan.TickersFile = "tickers.txt"
	}
	if c.Scan.DaysBack == 0 {
		c.Scan.DaysBack = 365
	}
	if c.Scan.BatchSize == 0 {
		c.Scan.BatchSize = 100
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = 4
	}
	if c.Scan.MinBars == 0 {
		c.Scan.MinBars = 50
	}
	if c.Scan.MinPrice == 0 {
		c.Scan.MinPrice = 1.0
	}
	if c.Scan.MinAvgVolume == 0 {
		c.Scan.MinAvgVolume = 100000
	}
	if c.Scan.MinRelativeVolume == 0 {
		c.Scan.MinRelativeVolume = 1.2
	}
	if c.Scan.VolumeLookback == 0 {
		c.Scan.VolumeLookback = 20
	}
	if c.Scan.WinRateThreshold == 0 {
		c.Scan.WinRateThreshold = 50.0
	}
	if c.Scan.Horizon == 0 {
		c.Scan.Horizon = 3
	}
	if c.Scan.SMAFastPeriod == 0 {
		c.Scan.SMAFastPeriod = 10
	}
	if c.Scan.SMASlowPeriod == 0 {
		c.Scan.SMASlowPeriod = 20
	}
	if c.Scan.DirectionalPeriod == 0 {
		c.Scan.DirectionalPeriod = 14
	}
	if c.Scan.TideBenchmark == "" {
		c.Scan.TideBenchmark = "SPY"
	}
	if c.Scan.TidePeriod == 0 {
		c.Scan.TidePeriod = 20
	}
	if c.Scan.TideDaysBack == 0 {
		c.Scan.TideDaysBack = 40
	}
	if c.Sizing.MaxCandidates == 0 {
		c.Sizing.MaxCandidates = 20
	}
	if c.Sizing.MaxSlotCash == 0 {
		c.Sizing.MaxSlotCash = 5000
	}
	if c.Sizing.PDTEquityThreshold == 0 {
		c.Sizing.PDTEquityThreshold = 30000
	}
	if c.Sizing.PDTDayTradeLimit == 0 {
		c.Sizing.PDTDayTradeLimit = 2
	}
	if c.Sizing.TargetPct == 0 {
		c.Sizing.TargetPct = 0.045
	}
	if c.Sizing.StopPct == 0 {
		c.Sizing.StopPct = 0.015
	}
	if c.Sizing.TickDecimals == 0 {
		c.Sizing.TickDecimals = 2
	}
	if c.Email.Port == 0 {
		c.Email.Port = 465
	}
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 40 15 * * 1-5"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "America/New_York"
	}
	if c.Schedule.WindowStart == "" {
		c.Schedule.WindowStart = "15:45"
	}
	if c.Schedule.WindowCutoff == "" {
		c.Schedule.WindowCutoff = "15:59"
	}
	if c.Schedule.MaxWaitMinute == 0 {
		c.Schedule.MaxWaitMinute = 50
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/breakout_sniper.db"
	}
}

// Validate checks structural constraints and required secrets.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Secrets.AlpacaAPIKey == "" || c.Secrets.AlpacaSecretKey == "" {
		return fmt.Errorf("ALPACA_API_KEY and ALPACA_SECRET_KEY are required")
	}
	if c.Scan.MinBars <= c.Scan.VolumeLookback {
		return fmt.Errorf("scan.min_bars must exceed scan.volume_lookback")
	}
	if c.Email.Host != "" && (c.Secrets.EmailUser == "" || c.Secrets.EmailPass == "" || c.Secrets.EmailReceiver == "") {
		return fmt.Errorf("EMAIL_USER, EMAIL_PASS and EMAIL_RECEIVER are required when email.host is set")
	}
	return nil
}
