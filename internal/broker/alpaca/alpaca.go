package alpaca

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"news-trader/internal/api"
	"news-trader/internal/interfaces"
	"news-trader/internal/types"
)

const (
	liveTradingURL  = "https://api.alpaca.markets"
	paperTradingURL = "https://paper-api.alpaca.markets"
	dataURL         = "https://data.alpaca.markets"
)

type Params struct {
	Mode      string // PAPER, LIVE or DRY_RUN
	APIKey    string
	APISecret string
}

// Alpaca implements the trading gateway over the Alpaca REST APIs. In DRY_RUN
// mode no network calls are made and orders are simulated as immediate fills.
// Read-only endpoints are retried with backoff; order submission and
// cancellation are single-attempt, mutating calls must never be replayed.
type Alpaca struct {
	p       Params
	trading *api.Client
	data    *api.Client
	retry   *api.RetryConfig
}

var _ interfaces.Gateway = (*Alpaca)(nil)

func New(p Params) *Alpaca {
	base := liveTradingURL
	if p.Mode == "PAPER" {
		base = paperTradingURL
	}

	a := &Alpaca{p: p, retry: api.DefaultRetryConfig()}
	if p.Mode != "DRY_RUN" {
		headers := api.AlpacaHeaders(p.APIKey, p.APISecret)
		opts := []api.ClientOption{
			api.WithTimeout(15 * time.Second),
			api.WithLogging(os.Getenv("HTTP_DEBUG") == "true"),
		}
		for k, v := range headers {
			opts = append(opts, api.WithHeader(k, v))
		}
		a.trading = api.NewClient(append(opts, api.WithBaseURL(base))...)
		a.data = api.NewClient(append(opts, api.WithBaseURL(dataURL))...)
	}
	return a
}

// getWithRetry issues an idempotent GET with the gateway's retry policy.
func (a *Alpaca) getWithRetry(ctx context.Context, c *api.Client, url string) (*api.Response, error) {
	req := api.NewRequest(http.MethodGet, url).WithContext(ctx)
	return c.DoWithRetry(req, a.retry)
}

func (a *Alpaca) MarketOpen(ctx context.Context) (bool, error) {
	if a.p.Mode == "DRY_RUN" {
		return true, nil
	}

	resp, err := a.getWithRetry(ctx, a.trading, "/v2/clock")
	if err != nil {
		return false, err
	}
	var clock struct {
		IsOpen bool `json:"is_open"`
	}
	if err := resp.ParseJSON(&clock); err != nil {
		return false, err
	}
	return clock.IsOpen, nil
}

func (a *Alpaca) BuyingPower(ctx context.Context) (float64, error) {
	if a.p.Mode == "DRY_RUN" {
		return 100000, nil
	}

	resp, err := a.getWithRetry(ctx, a.trading, "/v2/account")
	if err != nil {
		return 0, err
	}
	var account struct {
		BuyingPower string `json:"buying_power"`
	}
	if err := resp.ParseJSON(&account); err != nil {
		return 0, err
	}
	bp, err := strconv.ParseFloat(account.BuyingPower, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable buying power %q: %w", account.BuyingPower, err)
	}
	return bp, nil
}

func (a *Alpaca) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	if a.p.Mode == "DRY_RUN" {
		return 100, nil
	}

	resp, err := a.getWithRetry(ctx, a.data, "/v2/stocks/"+symbol+"/trades/latest")
	if err != nil {
		return 0, err
	}
	var latest struct {
		Trade struct {
			Price float64 `json:"p"`
		} `json:"trade"`
	}
	if err := resp.ParseJSON(&latest); err != nil {
		return 0, err
	}
	if latest.Trade.Price <= 0 {
		return 0, fmt.Errorf("no trade data found for %s", symbol)
	}
	return latest.Trade.Price, nil
}

func (a *Alpaca) SubmitBuy(ctx context.Context, symbol string, qty int) (types.OrderResp, error) {
	return a.submitOrder(ctx, symbol, qty, "buy")
}

func (a *Alpaca) SubmitSell(ctx context.Context, symbol string, qty int) (types.OrderResp, error) {
	return a.submitOrder(ctx, symbol, qty, "sell")
}

// submitOrder places a market order with time-in-force good-till-cancelled.
func (a *Alpaca) submitOrder(ctx context.Context, symbol string, qty int, side string) (types.OrderResp, error) {
	if qty <= 0 {
		return types.OrderResp{}, errors.New("order quantity must be positive")
	}
	if a.p.Mode == "DRY_RUN" {
		return types.OrderResp{
			OrderID: fmt.Sprintf("SIM-%d", time.Now().UnixNano()),
			Status:  "accepted",
			Message: "dry-run",
		}, nil
	}

	body := map[string]string{
		"symbol":        symbol,
		"qty":           strconv.Itoa(qty),
		"side":          side,
		"type":          "market",
		"time_in_force": "gtc",
	}
	resp, err := a.trading.POST(ctx, "/v2/orders", body)
	if err != nil {
		return types.OrderResp{}, err
	}
	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := resp.ParseJSON(&order); err != nil {
		return types.OrderResp{}, err
	}
	return types.OrderResp{OrderID: order.ID, Status: order.Status}, nil
}

func (a *Alpaca) OrderStatus(ctx context.Context, orderID string) (types.OrderStatusInfo, error) {
	if a.p.Mode == "DRY_RUN" {
		// Simulated orders fill instantly.
		return types.OrderStatusInfo{ID: orderID, Status: types.StatusFilled}, nil
	}

	resp, err := a.getWithRetry(ctx, a.trading, "/v2/orders/"+orderID)
	if err != nil {
		return types.OrderStatusInfo{}, err
	}
	var order struct {
		ID        string `json:"id"`
		Symbol    string `json:"symbol"`
		Status    string `json:"status"`
		FilledQty string `json:"filled_qty"`
	}
	if err := resp.ParseJSON(&order); err != nil {
		return types.OrderStatusInfo{}, err
	}

	filled, _ := strconv.ParseFloat(order.FilledQty, 64)
	return types.OrderStatusInfo{
		ID:        order.ID,
		Symbol:    order.Symbol,
		Status:    order.Status,
		FilledQty: int(filled),
	}, nil
}

func (a *Alpaca) CancelOrder(ctx context.Context, orderID string) error {
	if a.p.Mode == "DRY_RUN" {
		return nil
	}

	_, err := a.trading.DELETE(ctx, "/v2/orders/"+orderID)
	return err
}
