// Package config provides configuration management for the trading application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Risk        RiskConfig        `mapstructure:"risk"`
	Monitor     MonitorConfig     `mapstructure:"monitor"`
	MarketData  MarketDataConfig  `mapstructure:"market_data"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Credentials Credentials       `mapstructure:"-"` // Loaded separately
}

// RiskConfig holds portfolio risk limits and scoring thresholds.
type RiskConfig struct {
	MaxPositionRiskPercent    float64 `mapstructure:"max_position_risk_percent"`    // hard limit per position
	WarnPositionRiskPercent   float64 `mapstructure:"warn_position_risk_percent"`   // soft limit per position
	MaxConcentrationPercent   float64 `mapstructure:"max_concentration_percent"`    // hard limit per underlying
	WarnConcentrationPercent  float64 `mapstructure:"warn_concentration_percent"`   // soft limit per underlying
	MaxMarginUtilization      float64 `mapstructure:"max_margin_utilization"`       // hard limit, fraction
	WarnMarginUtilization     float64 `mapstructure:"warn_margin_utilization"`      // soft limit, fraction
	HighScoreThreshold        float64 `mapstructure:"high_score_threshold"`         // high-severity alert score
	MediumScoreThreshold      float64 `mapstructure:"medium_score_threshold"`       // medium-severity alert score
	LeverageWeight            float64 `mapstructure:"leverage_weight"`              // score blend weights
	ConcentrationWeight       float64 `mapstructure:"concentration_weight"`
	VaRWeight                 float64 `mapstructure:"var_weight"`
	NakedShortMarginRate      float64 `mapstructure:"naked_short_margin_rate"`      // flat margin estimate, fraction of notional
	StressShifts              []float64 `mapstructure:"stress_shifts"`
}

// MonitorConfig holds monitoring loop configuration.
type MonitorConfig struct {
	IntervalMinutes  int           `mapstructure:"interval_minutes"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	AlertDedupWindow time.Duration `mapstructure:"alert_dedup_window"`
}

// MarketDataConfig holds market-data provider configuration and the
// conservative defaults substituted when live data is unavailable.
type MarketDataConfig struct {
	Provider            string  `mapstructure:"provider"` // "paper", "kite"
	DefaultImpliedVol   float64 `mapstructure:"default_implied_vol"`
	DefaultRiskFreeRate float64 `mapstructure:"default_risk_free_rate"`
	DefaultDividendYield float64 `mapstructure:"default_dividend_yield"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// Credentials holds API credentials.
type Credentials struct {
	Kite KiteCredentials `mapstructure:"kite"`
}

// KiteCredentials holds Kite Connect API credentials.
type KiteCredentials struct {
	APIKey      string `mapstructure:"api_key"`
	AccessToken string `mapstructure:"access_token"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-trader"
	}
	return filepath.Join(home, ".config", "options-trader")
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	cfg.Risk = RiskConfig{
		MaxPositionRiskPercent:   10.0,
		WarnPositionRiskPercent:  5.0,
		MaxConcentrationPercent:  40.0,
		WarnConcentrationPercent: 25.0,
		MaxMarginUtilization:     0.90,
		WarnMarginUtilization:    0.70,
		HighScoreThreshold:       80.0,
		MediumScoreThreshold:     60.0,
		LeverageWeight:           0.40,
		ConcentrationWeight:      0.30,
		VaRWeight:                0.30,
		NakedShortMarginRate:     0.20,
		StressShifts:             []float64{-0.20, -0.10, 0.10, 0.20},
	}
	cfg.Monitor = MonitorConfig{
		IntervalMinutes:  5,
		CacheTTL:         5 * time.Minute,
		AlertDedupWindow: 5 * time.Minute,
	}
	cfg.MarketData = MarketDataConfig{
		Provider:             "paper",
		DefaultImpliedVol:    0.25,
		DefaultRiskFreeRate:  0.05,
		DefaultDividendYield: 0.0,
	}
	cfg.Logging = LoggingConfig{
		Level:   "info",
		Console: true,
		File:    true,
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. Missing files fall back to
// defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	if err := loadCredentials(configDir, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadCredentials(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("loading credentials.toml: %w", err)
	}
	if err := v.Unmarshal(&cfg.Credentials); err != nil {
		return fmt.Errorf("parsing credentials.toml: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KITE_API_KEY"); v != "" {
		cfg.Credentials.Kite.APIKey = v
	}
	if v := os.Getenv("KITE_ACCESS_TOKEN"); v != "" {
		cfg.Credentials.Kite.AccessToken = v
	}
	if v := os.Getenv("MARKET_DATA_PROVIDER"); v != "" {
		cfg.MarketData.Provider = v
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Monitor.IntervalMinutes <= 0 {
		return fmt.Errorf("monitor interval must be positive, got %d", c.Monitor.IntervalMinutes)
	}
	if c.Monitor.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.Monitor.CacheTTL)
	}
	if c.Risk.MaxConcentrationPercent <= 0 || c.Risk.MaxConcentrationPercent > 100 {
		return fmt.Errorf("max concentration percent out of range: %.1f", c.Risk.MaxConcentrationPercent)
	}
	if c.Risk.NakedShortMarginRate < 0 || c.Risk.NakedShortMarginRate > 1 {
		return fmt.Errorf("naked short margin rate out of range: %.2f", c.Risk.NakedShortMarginRate)
	}
	w := c.Risk.LeverageWeight + c.Risk.ConcentrationWeight + c.Risk.VaRWeight
	if w <= 0 {
		return fmt.Errorf("risk score weights must sum to a positive value")
	}
	if c.MarketData.DefaultImpliedVol <= 0 {
		return fmt.Errorf("default implied vol must be positive, got %.4f", c.MarketData.DefaultImpliedVol)
	}
	return nil
}
