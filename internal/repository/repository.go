package repository

import (
	"context"
	"errors"
	"time"

	"foodtrack/internal/model"
)

var ErrNotFound = errors.New("not found")

type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*model.Restaurant, error)
}

type OrderRepository interface {
	// Create assigns the next order id and stores the order.
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id int64) (*model.Order, error)
	// Advance moves the order one lifecycle stage forward and reports whether
	// the stage changed.
	Advance(ctx context.Context, id int64) (*model.Order, bool, error)
	ListActive(ctx context.Context, limit int) ([]model.Order, error)
}

type CollectionRepository interface {
	Create(ctx context.Context, c *model.Collection) error
	Get(ctx context.Context, id string) (*model.Collection, error)
	List(ctx context.Context) ([]model.Collection, error)
	// MarkCollected reports whether the collection changed state.
	MarkCollected(ctx context.Context, id string, at time.Time) (*model.Collection, bool, error)
}
