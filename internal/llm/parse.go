package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"news-trader/internal/types"
)

// ParsePrediction extracts a prediction from model output. The output should
// be a bare JSON object, but models occasionally wrap it in prose or code
// fences, so a JSON object embedded anywhere in the text is salvaged.
// An unlocatable or unparsable object is an error; the caller treats any
// error as "no signal".
func ParsePrediction(text string) (types.Prediction, error) {
	t := strings.TrimSpace(text)

	if strings.HasPrefix(t, "{") {
		var p types.Prediction
		if err := json.Unmarshal([]byte(t), &p); err == nil {
			normalize(&p)
			return p, nil
		}
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		var p types.Prediction
		if err := json.Unmarshal([]byte(t[start:end+1]), &p); err == nil {
			normalize(&p)
			return p, nil
		}
	}

	return types.Prediction{}, errors.New("no prediction object found in model output")
}

// normalize coerces out-of-schema values into the safe no-signal shape.
func normalize(p *types.Prediction) {
	p.Ticker = strings.TrimSpace(p.Ticker)
	if p.Ticker == "" {
		p.Ticker = types.TickerNone
	}
	if p.BuyLevel < types.BuyLevelNone || p.BuyLevel > types.BuyLevelStrong {
		p.BuyLevel = types.BuyLevelNone
	}
}
