package events

import (
	"context"
	"time"
)

const (
	OrderPlaced         = "order.placed"
	OrderStatusChanged  = "order.status_changed"
	CollectionCreated   = "collection.created"
	CollectionCollected = "collection.collected"
)

type Event struct {
	Type         string    `json:"type"`
	OrderID      int64     `json:"orderId,omitempty"`
	CollectionID string    `json:"collectionId,omitempty"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
