package news

import (
	"testing"

	"news-trader/internal/interfaces"
	"news-trader/internal/store"
)

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.News.FetchTimeoutSeconds = 5
	return cfg
}

func TestRegistryBuildKnownSource(t *testing.T) {
	r := NewRegistry()

	sources, err := r.Build([]string{"yahoo_finance"}, testConfig())
	if err != nil {
		t.Fatalf("expected yahoo_finance to resolve, got %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Name() != "Yahoo Finance" {
		t.Errorf("unexpected source name %q", sources[0].Name())
	}
}

func TestRegistryBuildUnknownSource(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Build([]string{"no_such_feed"}, testConfig()); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r := NewRegistry()

	err := r.Register("yahoo_finance", func(cfg *store.Config) interfaces.Source {
		return nil
	})
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
