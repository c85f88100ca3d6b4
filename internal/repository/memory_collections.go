package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foodtrack/internal/model"
)

type MemoryCollections struct {
	mu    sync.RWMutex
	items []model.Collection
}

func NewMemoryCollections() *MemoryCollections {
	return &MemoryCollections{}
}

func (r *MemoryCollections) Create(_ context.Context, c *model.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(c.ID) >= 0 {
		return fmt.Errorf("collection %s already exists", c.ID)
	}
	r.items = append(r.items, cloneCollection(*c))
	return nil
}

func (r *MemoryCollections) Get(_ context.Context, id string) (*model.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.find(id)
	if i < 0 {
		return nil, fmt.Errorf("collection %s: %w", id, ErrNotFound)
	}
	c := cloneCollection(r.items[i])
	return &c, nil
}

func (r *MemoryCollections) List(_ context.Context) ([]model.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Collection, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, cloneCollection(c))
	}
	return out, nil
}

func (r *MemoryCollections) MarkCollected(_ context.Context, id string, at time.Time) (*model.Collection, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id)
	if i < 0 {
		return nil, false, fmt.Errorf("collection %s: %w", id, ErrNotFound)
	}

	changed := false
	if r.items[i].Status != model.CollectionCollected {
		r.items[i].Status = model.CollectionCollected
		r.items[i].CollectedAt = &at
		changed = true
	}

	c := cloneCollection(r.items[i])
	return &c, changed, nil
}

func (r *MemoryCollections) find(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneCollection(c model.Collection) model.Collection {
	if c.CollectedAt != nil {
		at := *c.CollectedAt
		c.CollectedAt = &at
	}
	return c
}
