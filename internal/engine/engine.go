package engine

import (
	"context"
	"time"

	"news-trader/internal/interfaces"
	"news-trader/internal/logger"
	"news-trader/internal/news"
	"news-trader/internal/store"
	"news-trader/internal/tradelog"
	"news-trader/internal/types"
)

// Trader is the main engine: it polls news sources, asks the predictor for a
// verdict on each unseen article and turns strong verdicts into supervised
// market buys. Errors inside a cycle are logged and skip the current article;
// only context cancellation stops the loop above.
type Trader struct {
	cfg       *store.Config
	sources   []interfaces.Source
	predictor interfaces.Predictor
	gw        interfaces.Gateway
	cache     *news.TitleCache
	sup       *Supervisor
	history   *store.History

	// sleep is swappable so tests don't wait out the closed-market pause.
	sleep func(ctx context.Context, d time.Duration)
}

func New(cfg *store.Config, sources []interfaces.Source, predictor interfaces.Predictor, gw interfaces.Gateway, sup *Supervisor, history *store.History) *Trader {
	return &Trader{
		cfg:       cfg,
		sources:   sources,
		predictor: predictor,
		gw:        gw,
		cache:     news.NewTitleCache(cfg.News.CacheSize),
		sup:       sup,
		history:   history,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

var _ interfaces.Engine = (*Trader)(nil)

// WarmUp seeds the dedup cache with each source's current latest article so
// the first real cycle only reacts to news published after startup.
func (t *Trader) WarmUp(ctx context.Context) {
	for _, src := range t.sources {
		article, err := src.Latest(ctx)
		if err != nil {
			logger.Warn(ctx, "Warm-up fetch failed", "source", src.Name(), "error", err)
			continue
		}
		if article == nil {
			continue
		}
		t.cache.Record(article.Title)
		logger.Info(ctx, "Warm-up article cached", "source", src.Name(), "title", article.Title)
	}
}

// Cycle polls every source once. Each new article is predicted on and, when
// the verdict is strong, traded. The cycle itself never fails over a single
// article; the returned error is reserved for future cycle-level faults.
func (t *Trader) Cycle(ctx context.Context) (*types.CycleResult, error) {
	res := &types.CycleResult{}

	for _, src := range t.sources {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		article, err := src.Latest(ctx)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch latest article", err, "source", src.Name())
			continue
		}
		if article == nil {
			logger.Debug(ctx, "No usable article", "source", src.Name())
			continue
		}
		res.Fetched++

		if t.cache.Seen(article.Title) {
			logger.Debug(ctx, "Article already processed", "source", src.Name(), "title", article.Title)
			continue
		}
		// The title is consumed now: whatever happens downstream, this
		// article is never analyzed a second time.
		t.cache.Record(article.Title)
		res.NewTitles++
		logger.Info(ctx, "New article detected", "source", src.Name(), "title", article.Title)

		prediction, err := t.predictor.Predict(ctx, article)
		if err != nil {
			logger.ErrorWithErr(ctx, "Prediction failed, skipping article", err, "source", src.Name(), "title", article.Title)
			continue
		}
		res.Predicted++

		if err := t.history.RecordPrediction(article.Source, article.Title, prediction); err != nil {
			logger.ErrorWithErr(ctx, "Failed to persist prediction", err, "title", article.Title)
		}
		_ = tradelog.AppendPrediction(tradelog.PredictionEntry{
			Source:   article.Source,
			Title:    article.Title,
			Ticker:   prediction.Ticker,
			BuyLevel: prediction.BuyLevel,
		})

		if !prediction.Actionable() {
			logger.Info(ctx, "No trade signal", "ticker", prediction.Ticker, "buy_level", prediction.BuyLevel)
			continue
		}

		if resp := t.trade(ctx, prediction.Ticker); resp != nil {
			res.Orders = append(res.Orders, *resp)
		}
	}

	return res, nil
}

// trade sizes and submits a market buy for symbol. A closed market pauses the
// loop instead of queueing the order; any failure abandons the trade.
func (t *Trader) trade(ctx context.Context, symbol string) *types.OrderResp {
	open, err := t.gw.MarketOpen(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to check market clock, skipping trade", err, "symbol", symbol)
		return nil
	}
	if !open {
		logger.Info(ctx, "Market closed, sleeping", "symbol", symbol, "sleep_seconds", t.cfg.ClosedPollSeconds)
		t.sleep(ctx, time.Duration(t.cfg.ClosedPollSeconds)*time.Second)
		return nil
	}

	bp, err := t.gw.BuyingPower(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch buying power, skipping trade", err, "symbol", symbol)
		return nil
	}
	price, err := t.gw.LatestPrice(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch latest price, skipping trade", err, "symbol", symbol)
		return nil
	}

	qty := SizeOrder(bp, t.cfg.Order.BuyingPowerFraction, price)
	if qty <= 0 {
		logger.Warn(ctx, "Buying power too small for one share", "symbol", symbol, "buying_power", bp, "price", price)
		return nil
	}

	resp, err := t.sup.SubmitAndSupervise(ctx, types.OrderIntent{Symbol: symbol, Qty: qty, Price: price})
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to submit buy order", err, "symbol", symbol, "qty", qty)
		return nil
	}
	return resp
}

// SizeOrder converts a fraction of buying power into a whole-share quantity
// at the given price, rounding down. Zero means the account cannot afford a
// single share.
func SizeOrder(buyingPower, fraction, price float64) int {
	if price <= 0 {
		return 0
	}
	return int(buyingPower * fraction / price)
}
