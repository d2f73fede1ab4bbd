package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"news-trader/internal/interfaces"
	"news-trader/internal/logger"
	"news-trader/internal/store"
	"news-trader/internal/trace"
	"news-trader/internal/tradelog"
	"news-trader/internal/types"
)

// Supervisor tracks every submitted buy until it reaches a terminal state.
// Each tracked order gets one deferred status check after the configured
// delay: a filled order is left alone (or flipped into a sell when auto-sell
// is on), an unfilled order gets exactly one cancellation attempt.
type Supervisor struct {
	gw       interfaces.Gateway
	history  *store.History
	delay    time.Duration
	autoSell bool

	mu     sync.Mutex
	orders map[string]*types.SupervisedOrder
	wg     sync.WaitGroup
}

func NewSupervisor(gw interfaces.Gateway, history *store.History, delay time.Duration, autoSell bool) *Supervisor {
	return &Supervisor{
		gw:       gw,
		history:  history,
		delay:    delay,
		autoSell: autoSell,
		orders:   map[string]*types.SupervisedOrder{},
	}
}

// SubmitAndSupervise places the buy and puts the resulting order under
// supervision. A failed submission leaves nothing tracked; the zero-quantity
// guard mirrors the sizing rule upstream.
func (s *Supervisor) SubmitAndSupervise(ctx context.Context, intent types.OrderIntent) (*types.OrderResp, error) {
	if intent.Qty <= 0 {
		return nil, errors.New("refusing zero-quantity order")
	}

	resp, err := s.gw.SubmitBuy(ctx, intent.Symbol, intent.Qty)
	if err != nil {
		return nil, err
	}
	logger.Order(ctx, intent.Symbol, "BUY", intent.Qty, intent.Price, resp.OrderID)
	_ = tradelog.Append(tradelog.Entry{Symbol: intent.Symbol, Side: "BUY", Qty: intent.Qty, Price: intent.Price, OrderID: resp.OrderID, State: string(types.OrderSubmitted)})

	order := types.SupervisedOrder{
		OrderID:     resp.OrderID,
		Symbol:      intent.Symbol,
		Qty:         intent.Qty,
		SubmittedAt: time.Now(),
		State:       types.OrderSubmitted,
	}
	if err := s.history.RecordOrder(order, intent.Price); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist order", err, "order_id", resp.OrderID)
	}
	s.Track(ctx, order)

	return &resp, nil
}

// Track registers a submitted order and schedules its deferred check. The
// check runs on its own goroutine with a detached context so that an
// in-flight check always runs to completion, even during shutdown.
// Tracking the same order id twice is a no-op.
func (s *Supervisor) Track(ctx context.Context, order types.SupervisedOrder) {
	s.mu.Lock()
	if _, exists := s.orders[order.OrderID]; exists {
		s.mu.Unlock()
		logger.Warn(ctx, "Order already under supervision", "order_id", order.OrderID)
		return
	}
	order.State = types.OrderSubmitted
	s.orders[order.OrderID] = &order
	s.mu.Unlock()

	logger.Supervision(ctx, order.OrderID, order.Symbol, string(types.OrderSubmitted))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		time.Sleep(s.delay)
		s.check(order.OrderID)
	}()
}

// check performs the single deferred status inspection for an order.
func (s *Supervisor) check(orderID string) {
	ctx, span := trace.StartSpan(context.Background(), "supervisor.check")
	defer span.End()

	s.mu.Lock()
	order, ok := s.orders[orderID]
	s.mu.Unlock()
	if !ok {
		return
	}

	info, err := s.gw.OrderStatus(ctx, orderID)
	if err != nil {
		// The order stays SUBMITTED with its good-till-cancelled lifetime;
		// there is no retry of the check.
		logger.ErrorWithErr(ctx, "Order status check failed", err, "order_id", orderID, "symbol", order.Symbol)
		return
	}

	if info.Filled() {
		s.finish(ctx, order, types.OrderFilled)
		if s.autoSell && info.FilledQty > 0 {
			s.sellBack(ctx, order, info.FilledQty)
		}
		return
	}

	logger.Info(ctx, "Order not filled, cancelling", "order_id", orderID, "symbol", order.Symbol, "status", info.Status)
	if err := s.gw.CancelOrder(ctx, orderID); err != nil {
		logger.ErrorWithErr(ctx, "Order cancellation failed", err, "order_id", orderID, "symbol", order.Symbol)
		s.finish(ctx, order, types.OrderCancelFailed)
		return
	}
	s.finish(ctx, order, types.OrderCancelled)
}

// finish records the terminal state everywhere the order is tracked.
func (s *Supervisor) finish(ctx context.Context, order *types.SupervisedOrder, state types.OrderState) {
	s.mu.Lock()
	order.State = state
	s.mu.Unlock()

	logger.Supervision(ctx, order.OrderID, order.Symbol, string(state))
	if err := s.history.UpdateOrderState(order.OrderID, state); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist order state", err, "order_id", order.OrderID)
	}
	_ = tradelog.Append(tradelog.Entry{Symbol: order.Symbol, Side: "BUY", Qty: order.Qty, OrderID: order.OrderID, State: string(state)})
}

// sellBack closes out the filled quantity with a market sell.
func (s *Supervisor) sellBack(ctx context.Context, order *types.SupervisedOrder, qty int) {
	resp, err := s.gw.SubmitSell(ctx, order.Symbol, qty)
	if err != nil {
		logger.ErrorWithErr(ctx, "Auto-sell failed", err, "order_id", order.OrderID, "symbol", order.Symbol, "qty", qty)
		return
	}
	logger.Info(ctx, "Auto-sell submitted", "symbol", order.Symbol, "qty", qty, "order_id", resp.OrderID, "buy_order_id", order.OrderID)
	_ = tradelog.Append(tradelog.Entry{Symbol: order.Symbol, Side: "SELL", Qty: qty, OrderID: resp.OrderID, State: string(types.OrderSubmitted)})
}

// Wait blocks until every scheduled deferred check has completed.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}

// Snapshot returns a copy of every supervised order, for reporting.
func (s *Supervisor) Snapshot() []types.SupervisedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.SupervisedOrder, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out
}
