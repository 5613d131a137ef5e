package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Ledger struct {
		Path string `yaml:"path"`
	} `yaml:"ledger"`
	LLM struct {
		Provider            string  `yaml:"provider"`
		Model               string  `yaml:"model"`
		MaxTokens           int     `yaml:"max_tokens"`
		ClassifyTemperature float32 `yaml:"classify_temperature"`
		InsightTemperature  float32 `yaml:"insight_temperature"`
		EducateTemperature  float32 `yaml:"educate_temperature"`
	} `yaml:"llm"`
	Prices struct {
		Provider       string `yaml:"provider"`
		ExchangeSuffix string `yaml:"exchange_suffix"`
		KiteExchange   string `yaml:"kite_exchange"`
	} `yaml:"prices"`
	Forecast struct {
		HorizonDays int `yaml:"horizon_days"`
	} `yaml:"forecast"`
	Insight struct {
		RecentTrades int `yaml:"recent_trades"`
	} `yaml:"insight"`
	News struct {
		Enabled        bool `yaml:"enabled"`
		MaxHeadlines   int  `yaml:"max_headlines"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"news"`
	Session struct {
		MaxTurns int `yaml:"max_turns"`
	} `yaml:"session"`
}

func (c *Config) Validate() error {
	if c.Ledger.Path == "" {
		return errors.New("ledger.path cannot be empty")
	}
	switch c.LLM.Provider {
	case "GROQ", "OPENAI", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'GROQ', 'OPENAI' or 'NOOP'", c.LLM.Provider)
	}
	switch c.Prices.Provider {
	case "YAHOO", "KITE":
	default:
		return fmt.Errorf("invalid prices.provider '%s': must be 'YAHOO' or 'KITE'", c.Prices.Provider)
	}
	if c.Forecast.HorizonDays <= 0 {
		return fmt.Errorf("forecast.horizon_days must be positive, got %d", c.Forecast.HorizonDays)
	}
	if c.Session.MaxTurns <= 0 {
		return fmt.Errorf("session.max_turns must be positive, got %d", c.Session.MaxTurns)
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

// Default returns a Config with all defaults applied, for callers that run
// without a config file (tests, one-shot tools).
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Ledger.Path == "" {
		c.Ledger.Path = "stock_order_history.csv"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "GROQ"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "openai/gpt-oss-120b"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.InsightTemperature == 0 {
		c.LLM.InsightTemperature = 0.2
	}
	if c.LLM.EducateTemperature == 0 {
		c.LLM.EducateTemperature = 0.3
	}
	if c.Prices.Provider == "" {
		c.Prices.Provider = "YAHOO"
	}
	if c.Prices.ExchangeSuffix == "" {
		c.Prices.ExchangeSuffix = ".NS"
	}
	if c.Prices.KiteExchange == "" {
		c.Prices.KiteExchange = "NSE"
	}
	if c.Forecast.HorizonDays == 0 {
		c.Forecast.HorizonDays = 30
	}
	if c.Insight.RecentTrades == 0 {
		c.Insight.RecentTrades = 50
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 6
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}
	if c.Session.MaxTurns == 0 {
		c.Session.MaxTurns = 50
	}
}
