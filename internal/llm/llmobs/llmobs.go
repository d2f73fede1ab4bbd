package llmobs

import (
	"context"

	"news-trader/internal/interfaces"
	"news-trader/internal/logger"
	"news-trader/internal/trace"
	"news-trader/internal/types"
)

// observablePredictor wraps a Predictor with observability (logging & tracing)
type observablePredictor struct {
	predictor interfaces.Predictor
}

// Compile-time interface check
var _ interfaces.Predictor = (*observablePredictor)(nil)

// Wrap wraps a predictor with observability middleware
func Wrap(predictor interfaces.Predictor) interfaces.Predictor {
	return &observablePredictor{
		predictor: predictor,
	}
}

// Predict requests a prediction with observability
func (op *observablePredictor) Predict(ctx context.Context, article *types.Article) (types.Prediction, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Predict")
	defer span.End()

	logger.Debug(ctx, "Requesting prediction",
		"source", article.Source,
		"title", article.Title,
	)

	prediction, err := op.predictor.Predict(ctx, article)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to get prediction", err,
			"source", article.Source,
			"title", article.Title,
		)
		return types.Prediction{}, err
	}

	logger.Prediction(ctx, article.Source, article.Title, prediction.Ticker, prediction.BuyLevel)
	return prediction, nil
}
