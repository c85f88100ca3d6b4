package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodtrack/internal/model"
)

type OrderAdvancer interface {
	ListActive(ctx context.Context, limit int) ([]model.Order, error)
	AdvanceStatus(ctx context.Context, id int64) (*model.Order, error)
}

// StatusTicker simulates fulfillment by moving active orders one stage
// forward on every tick.
type StatusTicker struct {
	orders    OrderAdvancer
	interval  time.Duration
	batchSize int
}

func NewStatusTicker(orders OrderAdvancer, interval time.Duration, batchSize int) *StatusTicker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &StatusTicker{
		orders:    orders,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (w *StatusTicker) Start(ctx context.Context) {
	slog.Info("starting status ticker", "interval", w.interval, "batch_size", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("status ticker stopped")
			return
		case <-ticker.C:
			if _, err := w.processBatch(ctx); err != nil {
				slog.Error("batch processing failed", "error", err)
			}
		}
	}
}

// processBatch returns the number of orders advanced.
func (w *StatusTicker) processBatch(ctx context.Context) (int, error) {
	orders, err := w.orders.ListActive(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("get active orders: %w", err)
	}

	advanced := 0
	for _, order := range orders {
		updated, err := w.orders.AdvanceStatus(ctx, order.ID)
		if err != nil {
			slog.Error("failed to advance order", "order_id", order.ID, "error", err)
			continue
		}
		advanced++
		slog.Debug("order advanced", "order_id", updated.ID, "status", updated.Status)
	}

	return advanced, nil
}
