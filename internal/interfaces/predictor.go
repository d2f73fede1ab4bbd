package interfaces

import (
	"context"

	"news-trader/internal/types"
)

// Predictor judges whether an article signals a tradeable move. Implementations
// are stateful: they retain the session's prior exchanges and replay them into
// every call so the model can refuse to re-act on content it has already seen.
// Callers must treat an error as "no signal", never as fatal.
type Predictor interface {
	Predict(ctx context.Context, article *types.Article) (types.Prediction, error)
}
