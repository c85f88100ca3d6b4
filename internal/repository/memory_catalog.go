package repository

import (
	"context"
	"fmt"

	"foodtrack/internal/model"
)

// MemoryCatalog is read-only after construction.
type MemoryCatalog struct {
	restaurants []model.Restaurant
}

func NewMemoryCatalog(restaurants []model.Restaurant) *MemoryCatalog {
	c := &MemoryCatalog{restaurants: make([]model.Restaurant, 0, len(restaurants))}
	for _, r := range restaurants {
		c.restaurants = append(c.restaurants, cloneRestaurant(r))
	}
	return c
}

func (c *MemoryCatalog) ListRestaurants(_ context.Context) ([]model.Restaurant, error) {
	out := make([]model.Restaurant, 0, len(c.restaurants))
	for _, r := range c.restaurants {
		out = append(out, cloneRestaurant(r))
	}
	return out, nil
}

func (c *MemoryCatalog) GetRestaurant(_ context.Context, id int64) (*model.Restaurant, error) {
	for _, r := range c.restaurants {
		if r.ID == id {
			res := cloneRestaurant(r)
			return &res, nil
		}
	}
	return nil, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
}

func cloneRestaurant(r model.Restaurant) model.Restaurant {
	r.Menu = append([]model.MenuItem(nil), r.Menu...)
	return r
}
