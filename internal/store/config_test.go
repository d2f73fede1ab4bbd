package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "mode: DRY_RUN\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.PollSeconds != 10 {
		t.Errorf("poll_seconds default = %d, want 10", cfg.PollSeconds)
	}
	if cfg.ClosedPollSeconds != 60 {
		t.Errorf("closed_poll_seconds default = %d, want 60", cfg.ClosedPollSeconds)
	}
	if cfg.News.CacheSize != 10 {
		t.Errorf("cache_size default = %d, want 10", cfg.News.CacheSize)
	}
	if cfg.Order.BuyingPowerFraction != 0.30 {
		t.Errorf("buying_power_fraction default = %v, want 0.30", cfg.Order.BuyingPowerFraction)
	}
	if cfg.Order.CancelDelaySeconds != 60 {
		t.Errorf("cancel_delay_seconds default = %d, want 60", cfg.Order.CancelDelaySeconds)
	}
	if len(cfg.News.Sources) != 1 || cfg.News.Sources[0] != "yahoo_finance" {
		t.Errorf("sources default = %v, want [yahoo_finance]", cfg.News.Sources)
	}
	if cfg.LLM.MaxHistory != 50 {
		t.Errorf("max_history default = %d, want 50", cfg.LLM.MaxHistory)
	}
}

func TestLoadConfigKeepsUnboundedHistorySentinel(t *testing.T) {
	body := "mode: DRY_RUN\nllm:\n  max_history: -1\n"
	cfg, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LLM.MaxHistory != -1 {
		t.Errorf("max_history = %d, want -1 passed through unchanged", cfg.LLM.MaxHistory)
	}
}

func TestLoadConfigRejectsBadMode(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "mode: YOLO\n")); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestLoadConfigRejectsBadFraction(t *testing.T) {
	body := "mode: PAPER\norder:\n  buying_power_fraction: 1.5\n"
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for fraction > 1")
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	body := "mode: PAPER\nllm:\n  provider: CLAUDE\n"
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for unsupported llm provider")
	}
}
