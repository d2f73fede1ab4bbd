package llm

import (
	"testing"

	"news-trader/internal/types"
)

func TestParsePredictionBareJSON(t *testing.T) {
	p, err := ParsePrediction(`{"ticker": "NVDA", "buy_level": 2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Ticker != "NVDA" || p.BuyLevel != 2 {
		t.Errorf("unexpected prediction %+v", p)
	}
	if !p.Actionable() {
		t.Error("level-2 prediction with a ticker must be actionable")
	}
}

func TestParsePredictionEmbeddedInProse(t *testing.T) {
	text := "Here is my judgment:\n```json\n{\"ticker\": \"AAPL\", \"buy_level\": 1}\n```\nGood luck."
	p, err := ParsePrediction(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Ticker != "AAPL" || p.BuyLevel != 1 {
		t.Errorf("unexpected prediction %+v", p)
	}
	if p.Actionable() {
		t.Error("priced-in prediction must not be actionable")
	}
}

func TestParsePredictionCoercesOutOfRangeLevel(t *testing.T) {
	for _, text := range []string{
		`{"ticker": "TSLA", "buy_level": 5}`,
		`{"ticker": "TSLA", "buy_level": -1}`,
	} {
		p, err := ParsePrediction(text)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if p.BuyLevel != types.BuyLevelNone {
			t.Errorf("expected out-of-range level coerced to 0, got %d", p.BuyLevel)
		}
	}
}

func TestParsePredictionMissingTicker(t *testing.T) {
	p, err := ParsePrediction(`{"buy_level": 2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Ticker != types.TickerNone {
		t.Errorf("expected ticker coerced to %q, got %q", types.TickerNone, p.Ticker)
	}
	if p.Actionable() {
		t.Error("prediction without ticker must not be actionable")
	}
}

func TestParsePredictionGarbage(t *testing.T) {
	if _, err := ParsePrediction("the market looks great today"); err == nil {
		t.Fatal("expected error for output without a JSON object")
	}
}

func TestHistoryBound(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Add("in", "out")
	}
	if h.Len() != 3 {
		t.Errorf("expected history trimmed to 3, got %d", h.Len())
	}

	for _, max := range []int{0, -1} {
		unbounded := NewHistory(max)
		for i := 0; i < 5; i++ {
			unbounded.Add("in", "out")
		}
		if unbounded.Len() != 5 {
			t.Errorf("NewHistory(%d) must keep all 5 exchanges, got %d", max, unbounded.Len())
		}
	}
}
