package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.LLM.Provider != "GROQ" {
		t.Errorf("Expected default provider GROQ, got %s", cfg.LLM.Provider)
	}
	if cfg.Prices.ExchangeSuffix != ".NS" {
		t.Errorf("Expected default exchange suffix .NS, got %s", cfg.Prices.ExchangeSuffix)
	}
	if cfg.Forecast.HorizonDays != 30 {
		t.Errorf("Expected default horizon 30, got %d", cfg.Forecast.HorizonDays)
	}
	if cfg.Session.MaxTurns != 50 {
		t.Errorf("Expected default max turns 50, got %d", cfg.Session.MaxTurns)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadProvider(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "GEMINI"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown llm provider")
	}

	cfg = Default()
	cfg.Prices.Provider = "NASDAQ"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown prices provider")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
ledger:
  path: orders.csv
llm:
  provider: NOOP
prices:
  provider: YAHOO
  exchange_suffix: ".BO"
forecast:
  horizon_days: 7
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Ledger.Path != "orders.csv" {
		t.Errorf("Expected ledger path orders.csv, got %s", cfg.Ledger.Path)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("Expected provider NOOP, got %s", cfg.LLM.Provider)
	}
	if cfg.Prices.ExchangeSuffix != ".BO" {
		t.Errorf("Expected suffix .BO, got %s", cfg.Prices.ExchangeSuffix)
	}
	if cfg.Forecast.HorizonDays != 7 {
		t.Errorf("Expected horizon 7, got %d", cfg.Forecast.HorizonDays)
	}
	// Unset fields still get defaults
	if cfg.LLM.Model == "" {
		t.Error("Expected default model to be applied")
	}
	if cfg.Session.MaxTurns != 50 {
		t.Errorf("Expected default max turns, got %d", cfg.Session.MaxTurns)
	}
}
