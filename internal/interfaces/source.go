package interfaces

import (
	"context"

	"news-trader/internal/types"
)

// Source produces at most one latest article per poll. A nil article with a
// nil error means the source had nothing usable this cycle; callers treat
// errors the same way.
type Source interface {
	Name() string
	Latest(ctx context.Context) (*types.Article, error)
}
