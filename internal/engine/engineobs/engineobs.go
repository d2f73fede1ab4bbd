package engineobs

import (
	"context"

	"news-trader/internal/interfaces"
	"news-trader/internal/logger"
	"news-trader/internal/trace"
	"news-trader/internal/types"
)

// observableEngine wraps an Engine with observability (logging & tracing)
type observableEngine struct {
	engine interfaces.Engine
}

// Compile-time interface check
var _ interfaces.Engine = (*observableEngine)(nil)

// Wrap wraps an engine with observability middleware
func Wrap(engine interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: engine,
	}
}

func (oe *observableEngine) WarmUp(ctx context.Context) {
	ctx, span := trace.StartSpan(ctx, "engine.WarmUp")
	defer span.End()

	oe.engine.WarmUp(ctx)
	logger.Info(ctx, "Warm-up complete")
}

func (oe *observableEngine) Cycle(ctx context.Context) (*types.CycleResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Cycle")
	defer span.End()

	res, err := oe.engine.Cycle(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Cycle aborted", err)
		return res, err
	}
	logger.Debug(ctx, "Cycle complete",
		"fetched", res.Fetched,
		"new_titles", res.NewTitles,
		"predicted", res.Predicted,
		"orders", len(res.Orders),
	)
	return res, nil
}
