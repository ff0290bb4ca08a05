package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings. Sensitive values can be
// overridden through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feed struct {
		WSURL     string `yaml:"ws_url"`
		Depth     int    `yaml:"depth"`      // levels kept per side
		InboxSize int    `yaml:"inbox_size"` // engine inbox buffer
	} `yaml:"feed"`

	Defaults struct {
		Exchange  string  `yaml:"exchange"`
		Asset     string  `yaml:"asset"`
		OrderType string  `yaml:"order_type"`
		OrderSide string  `yaml:"order_side"`
		FeeTier   string  `yaml:"fee_tier"`
		Quantity  float64 `yaml:"quantity"`
		USDAmount float64 `yaml:"usd_amount"`
	} `yaml:"defaults"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Feed.WSURL == "" || (!hasPrefix(c.Feed.WSURL, "ws://") && !hasPrefix(c.Feed.WSURL, "wss://")) {
		return fmt.Errorf("invalid feed WS URL: %s", c.Feed.WSURL)
	}
	if c.Feed.Depth <= 0 {
		return fmt.Errorf("feed depth must be positive")
	}
	if c.Feed.InboxSize <= 0 {
		return fmt.Errorf("inbox size must be positive")
	}
	if c.Defaults.USDAmount < 0 {
		return fmt.Errorf("default USD amount cannot be negative")
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv overrides settings when environment variables are set.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("QUANTCOST_WS_URL"); url != "" {
		cfg.Feed.WSURL = url
	}
	if level := os.Getenv("QUANTCOST_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
