package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"news-trader/internal/types"
)

type fakeGateway struct {
	mu sync.Mutex

	open    bool
	openErr error

	buyingPower float64
	bpErr       error

	price    float64
	priceErr error

	buyResp types.OrderResp
	buyErr  error
	buys    []types.OrderIntent

	sells []int

	status      types.OrderStatusInfo
	statusErr   error
	statusCalls int

	cancelErr   error
	cancelCalls int
}

func (f *fakeGateway) MarketOpen(ctx context.Context) (bool, error) {
	return f.open, f.openErr
}

func (f *fakeGateway) BuyingPower(ctx context.Context) (float64, error) {
	return f.buyingPower, f.bpErr
}

func (f *fakeGateway) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	return f.price, f.priceErr
}

func (f *fakeGateway) SubmitBuy(ctx context.Context, symbol string, qty int) (types.OrderResp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buyErr != nil {
		return types.OrderResp{}, f.buyErr
	}
	f.buys = append(f.buys, types.OrderIntent{Symbol: symbol, Qty: qty})
	return f.buyResp, nil
}

func (f *fakeGateway) SubmitSell(ctx context.Context, symbol string, qty int) (types.OrderResp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sells = append(f.sells, qty)
	return types.OrderResp{OrderID: "sell-1", Status: "accepted"}, nil
}

func (f *fakeGateway) OrderStatus(ctx context.Context, orderID string) (types.OrderStatusInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return types.OrderStatusInfo{}, f.statusErr
	}
	return f.status, nil
}

func (f *fakeGateway) CancelOrder(ctx context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	return f.cancelErr
}

func trackOne(t *testing.T, gw *fakeGateway, autoSell bool) *Supervisor {
	t.Helper()
	t.Setenv("TRADER_LOG_DIR", t.TempDir())

	sup := NewSupervisor(gw, nil, 5*time.Millisecond, autoSell)
	sup.Track(context.Background(), types.SupervisedOrder{
		OrderID:     "order-1",
		Symbol:      "AAPL",
		Qty:         9,
		SubmittedAt: time.Now(),
	})
	sup.Wait()
	return sup
}

func stateOf(t *testing.T, sup *Supervisor, orderID string) types.OrderState {
	t.Helper()
	for _, o := range sup.Snapshot() {
		if o.OrderID == orderID {
			return o.State
		}
	}
	t.Fatalf("order %s not tracked", orderID)
	return ""
}

func TestSupervisorLeavesFilledOrderAlone(t *testing.T) {
	gw := &fakeGateway{status: types.OrderStatusInfo{ID: "order-1", Status: types.StatusFilled, FilledQty: 9}}
	sup := trackOne(t, gw, false)

	if gw.cancelCalls != 0 {
		t.Fatalf("expected no cancellation for a filled order, got %d", gw.cancelCalls)
	}
	if got := stateOf(t, sup, "order-1"); got != types.OrderFilled {
		t.Fatalf("state = %s, want %s", got, types.OrderFilled)
	}
	if len(gw.sells) != 0 {
		t.Fatalf("auto-sell disabled but SubmitSell was called %d times", len(gw.sells))
	}
}

func TestSupervisorCancelsUnfilledOrderOnce(t *testing.T) {
	gw := &fakeGateway{status: types.OrderStatusInfo{ID: "order-1", Status: "new"}}
	sup := trackOne(t, gw, false)

	if gw.cancelCalls != 1 {
		t.Fatalf("cancel calls = %d, want exactly 1", gw.cancelCalls)
	}
	if got := stateOf(t, sup, "order-1"); got != types.OrderCancelled {
		t.Fatalf("state = %s, want %s", got, types.OrderCancelled)
	}
}

func TestSupervisorRecordsCancelFailure(t *testing.T) {
	gw := &fakeGateway{
		status:    types.OrderStatusInfo{ID: "order-1", Status: "new"},
		cancelErr: errors.New("api down"),
	}
	sup := trackOne(t, gw, false)

	if gw.cancelCalls != 1 {
		t.Fatalf("cancel calls = %d, want exactly 1 (no retry)", gw.cancelCalls)
	}
	if got := stateOf(t, sup, "order-1"); got != types.OrderCancelFailed {
		t.Fatalf("state = %s, want %s", got, types.OrderCancelFailed)
	}
}

func TestSupervisorStatusFailureLeavesOrderSubmitted(t *testing.T) {
	gw := &fakeGateway{statusErr: errors.New("timeout")}
	sup := trackOne(t, gw, false)

	if gw.cancelCalls != 0 {
		t.Fatalf("cancel must not run when the status check fails, got %d calls", gw.cancelCalls)
	}
	if got := stateOf(t, sup, "order-1"); got != types.OrderSubmitted {
		t.Fatalf("state = %s, want %s", got, types.OrderSubmitted)
	}
}

func TestSupervisorAutoSellSubmitsFilledQty(t *testing.T) {
	gw := &fakeGateway{status: types.OrderStatusInfo{ID: "order-1", Status: types.StatusFilled, FilledQty: 7}}
	trackOne(t, gw, true)

	if len(gw.sells) != 1 || gw.sells[0] != 7 {
		t.Fatalf("sells = %v, want one sell of 7 shares", gw.sells)
	}
}

func TestSubmitAndSuperviseRejectsZeroQuantity(t *testing.T) {
	gw := &fakeGateway{}
	sup := NewSupervisor(gw, nil, time.Millisecond, false)

	if _, err := sup.SubmitAndSupervise(context.Background(), types.OrderIntent{Symbol: "AAPL", Qty: 0}); err == nil {
		t.Fatal("expected error for zero-quantity intent")
	}
	sup.Wait()
	if len(gw.buys) != 0 {
		t.Fatalf("no order may be submitted, got %v", gw.buys)
	}
}

func TestSubmitAndSuperviseTracksNothingOnFailure(t *testing.T) {
	gw := &fakeGateway{buyErr: errors.New("rejected")}
	sup := NewSupervisor(gw, nil, time.Millisecond, false)

	if _, err := sup.SubmitAndSupervise(context.Background(), types.OrderIntent{Symbol: "AAPL", Qty: 9, Price: 100}); err == nil {
		t.Fatal("expected submission error to propagate")
	}
	sup.Wait()
	if gw.statusCalls != 0 {
		t.Fatalf("no supervision task may run for a failed submission, got %d status calls", gw.statusCalls)
	}
	if len(sup.Snapshot()) != 0 {
		t.Fatalf("snapshot = %v, want empty", sup.Snapshot())
	}
}

func TestSupervisorIgnoresDuplicateTrack(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	gw := &fakeGateway{status: types.OrderStatusInfo{ID: "order-1", Status: types.StatusFilled}}

	sup := NewSupervisor(gw, nil, 5*time.Millisecond, false)
	order := types.SupervisedOrder{OrderID: "order-1", Symbol: "AAPL", Qty: 9}
	sup.Track(context.Background(), order)
	sup.Track(context.Background(), order)
	sup.Wait()

	if gw.statusCalls != 1 {
		t.Fatalf("status calls = %d, want 1 supervision task per order id", gw.statusCalls)
	}
}
