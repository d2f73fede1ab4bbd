package interfaces

import (
	"context"

	"news-trader/internal/types"
)

// Engine runs the polling loop one cycle at a time.
type Engine interface {
	// WarmUp seeds the dedup cache with whatever each source currently
	// reports as its latest article, so startup never trades on stale news.
	WarmUp(ctx context.Context)
	// Cycle polls every source once and processes any new articles.
	Cycle(ctx context.Context) (*types.CycleResult, error)
}
