package noop

import (
	"context"

	"news-trader/internal/logger"
	"news-trader/internal/types"
)

// Predictor is a fallback used when no LLM provider is configured
type Predictor struct{}

// NewPredictor returns a predictor that never signals a trade
func NewPredictor() *Predictor {
	return &Predictor{}
}

// Predict implements the Predictor interface. It always returns no signal.
func (p *Predictor) Predict(ctx context.Context, article *types.Article) (types.Prediction, error) {
	logger.Debug(ctx, "Noop predictor called - always returns no signal", "title", article.Title)
	return types.Prediction{
		Ticker:   types.TickerNone,
		BuyLevel: types.BuyLevelNone,
	}, nil
}
