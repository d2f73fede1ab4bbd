package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode              string `yaml:"mode"` // PAPER, LIVE or DRY_RUN
	PollSeconds       int    `yaml:"poll_seconds"`
	ClosedPollSeconds int    `yaml:"closed_poll_seconds"`
	News              struct {
		Sources             []string `yaml:"sources"`
		CacheSize           int      `yaml:"cache_size"`
		FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds"`
	} `yaml:"news"`
	LLM struct {
		Provider    string  `yaml:"provider"` // GEMINI, OPENAI or NOOP
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
		MaxHistory  int     `yaml:"max_history"` // -1 keeps the whole session
	} `yaml:"llm"`
	Order struct {
		BuyingPowerFraction float64 `yaml:"buying_power_fraction"`
		CancelDelaySeconds  int     `yaml:"cancel_delay_seconds"`
		AutoSell            struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"auto_sell"`
	} `yaml:"order"`
	History struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"history"`
	Status struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"status"`
}

func (c *Config) Validate() error {
	if c.Mode != "PAPER" && c.Mode != "LIVE" && c.Mode != "DRY_RUN" {
		return fmt.Errorf("invalid mode '%s': must be 'PAPER', 'LIVE' or 'DRY_RUN'", c.Mode)
	}
	if len(c.News.Sources) == 0 {
		return errors.New("news.sources cannot be empty")
	}
	if c.News.CacheSize <= 0 {
		return fmt.Errorf("news.cache_size must be positive, got %d", c.News.CacheSize)
	}
	switch c.LLM.Provider {
	case "GEMINI", "OPENAI", "NOOP":
	default:
		return fmt.Errorf("llm.provider must be 'GEMINI', 'OPENAI' or 'NOOP', got '%s'", c.LLM.Provider)
	}
	if c.Order.BuyingPowerFraction <= 0 || c.Order.BuyingPowerFraction > 1 {
		return fmt.Errorf("order.buying_power_fraction must be in (0,1], got %.2f", c.Order.BuyingPowerFraction)
	}
	if c.Order.CancelDelaySeconds <= 0 {
		return fmt.Errorf("order.cancel_delay_seconds must be positive, got %d", c.Order.CancelDelaySeconds)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = "PAPER"
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = 10
	}
	if c.ClosedPollSeconds == 0 {
		c.ClosedPollSeconds = 60
	}
	if len(c.News.Sources) == 0 {
		c.News.Sources = []string{"yahoo_finance"}
	}
	if c.News.CacheSize == 0 {
		c.News.CacheSize = 10
	}
	if c.News.FetchTimeoutSeconds == 0 {
		c.News.FetchTimeoutSeconds = 15
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "GEMINI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.0-flash-exp"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 512
	}
	// 0 means "not set" in yaml; the unbounded sentinel is -1.
	if c.LLM.MaxHistory == 0 {
		c.LLM.MaxHistory = 50
	}
	if c.Order.BuyingPowerFraction == 0 {
		c.Order.BuyingPowerFraction = 0.30
	}
	if c.Order.CancelDelaySeconds == 0 {
		c.Order.CancelDelaySeconds = 60
	}
	if c.History.Path == "" {
		c.History.Path = "trader.db"
	}
	if c.Status.Addr == "" {
		c.Status.Addr = ":8090"
	}
}
