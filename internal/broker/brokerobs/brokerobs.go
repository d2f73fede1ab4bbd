package brokerobs

import (
	"context"

	"news-trader/internal/interfaces"
	"news-trader/internal/logger"
	"news-trader/internal/trace"
	"news-trader/internal/types"
)

// observableGateway wraps a Gateway with observability (logging & tracing)
type observableGateway struct {
	gateway interfaces.Gateway
}

// Compile-time interface check
var _ interfaces.Gateway = (*observableGateway)(nil)

// Wrap wraps a gateway with observability middleware
func Wrap(gateway interfaces.Gateway) interfaces.Gateway {
	return &observableGateway{
		gateway: gateway,
	}
}

func (og *observableGateway) MarketOpen(ctx context.Context) (bool, error) {
	ctx, span := trace.StartSpan(ctx, "gateway.MarketOpen")
	defer span.End()

	open, err := og.gateway.MarketOpen(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to check market clock", err)
		return false, err
	}
	logger.Debug(ctx, "Market clock checked", "open", open)
	return open, nil
}

func (og *observableGateway) BuyingPower(ctx context.Context) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "gateway.BuyingPower")
	defer span.End()

	bp, err := og.gateway.BuyingPower(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch buying power", err)
		return 0, err
	}
	logger.Debug(ctx, "Buying power fetched", "buying_power", bp)
	return bp, nil
}

func (og *observableGateway) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "gateway.LatestPrice")
	defer span.End()

	price, err := og.gateway.LatestPrice(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch latest price", err, "symbol", symbol)
		return 0, err
	}
	logger.Debug(ctx, "Latest price fetched", "symbol", symbol, "price", price)
	return price, nil
}

func (og *observableGateway) SubmitBuy(ctx context.Context, symbol string, qty int) (types.OrderResp, error) {
	ctx, span := trace.StartSpan(ctx, "gateway.SubmitBuy")
	defer span.End()

	resp, err := og.gateway.SubmitBuy(ctx, symbol, qty)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to submit buy order", err, "symbol", symbol, "qty", qty)
		return types.OrderResp{}, err
	}
	logger.Info(ctx, "Buy order submitted", "symbol", symbol, "qty", qty, "order_id", resp.OrderID, "status", resp.Status)
	return resp, nil
}

func (og *observableGateway) SubmitSell(ctx context.Context, symbol string, qty int) (types.OrderResp, error) {
	ctx, span := trace.StartSpan(ctx, "gateway.SubmitSell")
	defer span.End()

	resp, err := og.gateway.SubmitSell(ctx, symbol, qty)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to submit sell order", err, "symbol", symbol, "qty", qty)
		return types.OrderResp{}, err
	}
	logger.Info(ctx, "Sell order submitted", "symbol", symbol, "qty", qty, "order_id", resp.OrderID, "status", resp.Status)
	return resp, nil
}

func (og *observableGateway) OrderStatus(ctx context.Context, orderID string) (types.OrderStatusInfo, error) {
	ctx, span := trace.StartSpan(ctx, "gateway.OrderStatus")
	defer span.End()

	info, err := og.gateway.OrderStatus(ctx, orderID)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch order status", err, "order_id", orderID)
		return types.OrderStatusInfo{}, err
	}
	logger.Debug(ctx, "Order status fetched", "order_id", orderID, "status", info.Status, "filled_qty", info.FilledQty)
	return info, nil
}

func (og *observableGateway) CancelOrder(ctx context.Context, orderID string) error {
	ctx, span := trace.StartSpan(ctx, "gateway.CancelOrder")
	defer span.End()

	if err := og.gateway.CancelOrder(ctx, orderID); err != nil {
		logger.ErrorWithErr(ctx, "Failed to cancel order", err, "order_id", orderID)
		return err
	}
	logger.Info(ctx, "Cancellation request submitted", "order_id", orderID)
	return nil
}
