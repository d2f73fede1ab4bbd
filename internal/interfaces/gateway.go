package interfaces

import (
	"context"

	"news-trader/internal/types"
)

// Gateway executes account and order operations against the brokerage.
// Implementations must be safe for concurrent calls: order supervision tasks
// invoke it from their own goroutines.
type Gateway interface {
	MarketOpen(ctx context.Context) (bool, error)
	BuyingPower(ctx context.Context) (float64, error)
	LatestPrice(ctx context.Context, symbol string) (float64, error)
	SubmitBuy(ctx context.Context, symbol string, qty int) (types.OrderResp, error)
	SubmitSell(ctx context.Context, symbol string, qty int) (types.OrderResp, error)
	OrderStatus(ctx context.Context, orderID string) (types.OrderStatusInfo, error)
	CancelOrder(ctx context.Context, orderID string) error
}
