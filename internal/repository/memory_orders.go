package repository

import (
	"context"
	"fmt"
	"sync"

	"foodtrack/internal/model"
)

const FirstOrderID int64 = 1001

type MemoryOrders struct {
	mu     sync.Mutex
	nextID int64
	orders []model.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{nextID: FirstOrderID}
}

func (r *MemoryOrders) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, order.Clone())
	return nil
}

func (r *MemoryOrders) Get(_ context.Context, id int64) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id)
	if i < 0 {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	o := r.orders[i].Clone()
	return &o, nil
}

func (r *MemoryOrders) Advance(_ context.Context, id int64) (*model.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id)
	if i < 0 {
		return nil, false, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	prev := r.orders[i].Status
	r.orders[i].Status = prev.Next()

	o := r.orders[i].Clone()
	return &o, o.Status != prev, nil
}

func (r *MemoryOrders) ListActive(_ context.Context, limit int) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Order
	for _, o := range r.orders {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !o.Status.IsTerminal() {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

// find is a linear scan; callers hold mu.
func (r *MemoryOrders) find(id int64) int {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return i
		}
	}
	return -1
}
