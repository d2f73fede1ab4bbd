package store

import (
	"path/filepath"
	"testing"

	"news-trader/internal/types"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "trader.db"))
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	return h
}

func TestHistoryRecordsOrderLifecycle(t *testing.T) {
	h := openTestHistory(t)

	order := types.SupervisedOrder{OrderID: "order-1", Symbol: "AAPL", Qty: 9, State: types.OrderSubmitted}
	if err := h.RecordOrder(order, 333.33); err != nil {
		t.Fatalf("RecordOrder failed: %v", err)
	}
	if err := h.UpdateOrderState("order-1", types.OrderCancelled); err != nil {
		t.Fatalf("UpdateOrderState failed: %v", err)
	}

	recs, err := h.RecentOrders(10)
	if err != nil {
		t.Fatalf("RecentOrders failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d orders, want 1", len(recs))
	}
	if recs[0].State != string(types.OrderCancelled) {
		t.Errorf("state = %s, want %s", recs[0].State, types.OrderCancelled)
	}
	if recs[0].Symbol != "AAPL" || recs[0].Qty != 9 {
		t.Errorf("record = %+v, want AAPL x9", recs[0])
	}
}

func TestHistoryRecordsPredictions(t *testing.T) {
	h := openTestHistory(t)

	preds := []types.Prediction{
		{Ticker: "AAPL", BuyLevel: types.BuyLevelStrong},
		{Ticker: types.TickerNone, BuyLevel: types.BuyLevelNone},
	}
	for i, p := range preds {
		if err := h.RecordPrediction("Yahoo Finance", "headline", p); err != nil {
			t.Fatalf("RecordPrediction %d failed: %v", i, err)
		}
	}

	recs, err := h.RecentPredictions(10)
	if err != nil {
		t.Fatalf("RecentPredictions failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d predictions, want 2", len(recs))
	}
	// Newest first.
	if recs[0].Ticker != types.TickerNone {
		t.Errorf("first record ticker = %s, want %s", recs[0].Ticker, types.TickerNone)
	}
}

func TestNilHistoryIsNoOp(t *testing.T) {
	var h *History
	if err := h.RecordPrediction("src", "title", types.Prediction{}); err != nil {
		t.Errorf("nil RecordPrediction returned %v", err)
	}
	if err := h.RecordOrder(types.SupervisedOrder{}, 0); err != nil {
		t.Errorf("nil RecordOrder returned %v", err)
	}
	if err := h.UpdateOrderState("x", types.OrderFilled); err != nil {
		t.Errorf("nil UpdateOrderState returned %v", err)
	}
	if recs, err := h.RecentOrders(5); err != nil || recs != nil {
		t.Errorf("nil RecentOrders = (%v, %v), want (nil, nil)", recs, err)
	}
}
