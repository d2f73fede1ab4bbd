package eod

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"news-trader/internal/types"
)

type tradeLine struct {
	Time, Symbol, Side, OrderID, State string
	Qty                                int
	Price                              float64
}
type aggRow struct {
	Symbol       string
	Submitted    int
	Filled       int
	Cancelled    int
	CancelFailed int
	BuyQty       int
	BuyValue     float64
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}
func easternNow() time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}
func todaysTradeFile(t time.Time) string {
	d := t.Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}
func eodCSVPath(t time.Time) string {
	d := t.Format("2006-01-02")
	return filepath.Join(logDir(), "eod", d+".csv")
}

// SummarizeDay aggregates the day's order log into a per-symbol CSV: how many
// buys were submitted and how each supervision ended. Returns an empty path
// when the day had no orders.
func SummarizeDay(t time.Time) (string, error) {
	inPath := todaysTradeFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var tl tradeLine
		if err := json.Unmarshal([]byte(sc.Text()), &tl); err != nil {
			continue
		}
		if tl.Side != "BUY" {
			continue
		}
		row := aggs[tl.Symbol]
		if row == nil {
			row = &aggRow{Symbol: tl.Symbol}
			aggs[tl.Symbol] = row
		}
		switch types.OrderState(tl.State) {
		case types.OrderSubmitted:
			row.Submitted++
			row.BuyQty += tl.Qty
			row.BuyValue += float64(tl.Qty) * tl.Price
		case types.OrderFilled:
			row.Filled++
		case types.OrderCancelled:
			row.Cancelled++
		case types.OrderCancelFailed:
			row.CancelFailed++
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	outPath := eodCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()
	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"symbol", "submitted", "filled", "cancelled", "cancel_failed", "buy_qty", "gross_buy_value"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	var totalSubmitted, totalFilled int
	var totalValue float64
	for _, k := range keys {
		r := aggs[k]
		rec := []string{r.Symbol, strconv.Itoa(r.Submitted), strconv.Itoa(r.Filled), strconv.Itoa(r.Cancelled), strconv.Itoa(r.CancelFailed), strconv.Itoa(r.BuyQty), fmt.Sprintf("%.2f", r.BuyValue)}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalSubmitted += r.Submitted
		totalFilled += r.Filled
		totalValue += r.BuyValue
	}
	_ = w.Write([]string{"TOTAL", strconv.Itoa(totalSubmitted), strconv.Itoa(totalFilled), "", "", "", fmt.Sprintf("%.2f", totalValue)})
	return outPath, nil
}
func SummarizeToday() (string, error) { return SummarizeDay(easternNow()) }

// ShouldRunNow reports whether the summary for today is due: after the
// 16:00 ET close (with settle margin) and not generated yet.
func ShouldRunNow() (bool, string) {
	now := easternNow()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 16, 10, 0, 0, now.Location())
	outPath := eodCSVPath(now)
	if now.After(cutoff) {
		if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
			return true, outPath
		}
	}
	return false, outPath
}
