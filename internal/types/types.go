package types

import (
	"fmt"
	"time"
)

// Article is a single news item produced by a news source. Immutable once
// produced; Title is the dedup key. Sources discard items without a usable
// title or body, so downstream code never sees them.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Content     string `json:"content"`
	Source      string `json:"source"`
}

// PromptText renders the article the way the predictor expects to see it.
func (a *Article) PromptText() string {
	return fmt.Sprintf("News Title: %s\nArticle Content:\n%s", a.Title, a.Content)
}

// TickerNone is the sentinel the model returns when no stock applies.
const TickerNone = "N/A"

// Buy levels returned by the predictor. Only BuyLevelStrong triggers an order.
const (
	BuyLevelNone     = 0 // no signal, price will not move
	BuyLevelPricedIn = 1 // positive but already reflected in the price
	BuyLevelStrong   = 2 // strong enough to warrant a purchase
)

type Prediction struct {
	Ticker   string `json:"ticker"`
	BuyLevel int    `json:"buy_level"`
}

// Actionable reports whether the prediction should result in an order.
func (p Prediction) Actionable() bool {
	return p.Ticker != "" && p.Ticker != TickerNone && p.BuyLevel > BuyLevelPricedIn
}

// OrderIntent describes a buy the engine wants placed. Side is always BUY and
// time-in-force always good-till-cancelled; Price is the quote used for sizing.
type OrderIntent struct {
	Symbol string
	Qty    int
	Price  float64
}

type OrderResp struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// StatusFilled is the normalized gateway status for a completely filled order.
const StatusFilled = "filled"

// OrderStatusInfo is the gateway's view of a previously submitted order.
type OrderStatusInfo struct {
	ID        string
	Symbol    string
	Status    string
	FilledQty int
}

// Filled reports whether the order has been completely executed.
func (o OrderStatusInfo) Filled() bool { return o.Status == StatusFilled }

// OrderState is the supervisor-side lifecycle of a submitted buy.
// Submitted is the only non-terminal state.
type OrderState string

const (
	OrderSubmitted    OrderState = "SUBMITTED"
	OrderFilled       OrderState = "FILLED"
	OrderCancelled    OrderState = "CANCELLED"
	OrderCancelFailed OrderState = "CANCEL_FAILED"
)

// SupervisedOrder is a submitted buy tracked until it reaches a terminal state.
// Exactly one supervision task exists per order id.
type SupervisedOrder struct {
	OrderID     string
	Symbol      string
	Qty         int
	SubmittedAt time.Time
	State       OrderState
}

// CycleResult summarizes one poll cycle of the main loop.
type CycleResult struct {
	Fetched   int         `json:"fetched"`
	NewTitles int         `json:"new_titles"`
	Predicted int         `json:"predicted"`
	Orders    []OrderResp `json:"orders,omitempty"`
}
