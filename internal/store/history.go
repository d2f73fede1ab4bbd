package store

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"news-trader/internal/types"
)

// PredictionRecord persists one LLM verdict for a news article.
type PredictionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Ticker    string    `json:"ticker"`
	BuyLevel  int       `json:"buy_level"`
}

// OrderRecord persists one supervised order and its terminal state.
type OrderRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	OrderID   string    `gorm:"index" json:"order_id"`
	Symbol    string    `json:"symbol"`
	Qty       int       `json:"qty"`
	Price     float64   `json:"price"`
	State     string    `json:"state"`
}

// History is a sqlite-backed record of predictions and orders. A nil *History
// is valid and turns every method into a no-op, so callers never need to
// branch on whether persistence is enabled.
type History struct {
	db *gorm.DB
}

// OpenHistory opens (or creates) the sqlite database at path and migrates
// the schema.
func OpenHistory(path string) (*History, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&PredictionRecord{}, &OrderRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &History{db: db}, nil
}

// RecordPrediction stores an LLM verdict. Failures are returned but callers
// treat them as non-fatal.
func (h *History) RecordPrediction(source, title string, pred types.Prediction) error {
	if h == nil {
		return nil
	}
	rec := PredictionRecord{
		Source:   source,
		Title:    title,
		Ticker:   pred.Ticker,
		BuyLevel: pred.BuyLevel,
	}
	return h.db.Create(&rec).Error
}

// RecordOrder stores a freshly submitted order.
func (h *History) RecordOrder(o types.SupervisedOrder, price float64) error {
	if h == nil {
		return nil
	}
	rec := OrderRecord{
		OrderID: o.OrderID,
		Symbol:  o.Symbol,
		Qty:     o.Qty,
		Price:   price,
		State:   string(o.State),
	}
	return h.db.Create(&rec).Error
}

// UpdateOrderState moves an order record to its new state.
func (h *History) UpdateOrderState(orderID string, state types.OrderState) error {
	if h == nil {
		return nil
	}
	return h.db.Model(&OrderRecord{}).
		Where("order_id = ?", orderID).
		Update("state", string(state)).Error
}

// RecentPredictions returns up to limit predictions, newest first.
func (h *History) RecentPredictions(limit int) ([]PredictionRecord, error) {
	if h == nil {
		return nil, nil
	}
	var recs []PredictionRecord
	err := h.db.Order("id desc").Limit(limit).Find(&recs).Error
	return recs, err
}

// RecentOrders returns up to limit orders, newest first.
func (h *History) RecentOrders(limit int) ([]OrderRecord, error) {
	if h == nil {
		return nil, nil
	}
	var recs []OrderRecord
	err := h.db.Order("id desc").Limit(limit).Find(&recs).Error
	return recs, err
}

// AllOrders returns every order record, oldest first.
func (h *History) AllOrders() ([]OrderRecord, error) {
	if h == nil {
		return nil, nil
	}
	var recs []OrderRecord
	err := h.db.Order("id asc").Find(&recs).Error
	return recs, err
}
