package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"foodtrack/internal/events"
	"foodtrack/internal/model"
	"foodtrack/internal/repository"
)

type PlaceOrderInput struct {
	RestaurantID int64
	Items        []json.RawMessage
	Total        float64
}

type OrderService struct {
	orders    repository.OrderRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewOrderService(orders repository.OrderRepository, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{
		orders:    orders,
		publisher: publisher,
		now:       time.Now,
	}
}

// Place validates the input and appends a new order to the ledger.
// restaurantId is not checked against the catalog and a zero total is
// treated as missing.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 || in.Total == 0 || in.RestaurantID == 0 {
		return nil, fmt.Errorf("missing order details: %w", ErrInvalidRequest)
	}

	order := &model.Order{
		RestaurantID: in.RestaurantID,
		Items:        in.Items,
		Total:        in.Total,
		Status:       model.StatusPlaced,
		Timestamp:    s.now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, events.Event{
		Type:       events.OrderPlaced,
		OrderID:    order.ID,
		Status:     order.Status.String(),
		OccurredAt: order.Timestamp,
	})

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

// AdvanceStatus moves the order to the next lifecycle stage. Delivered
// orders are returned unchanged.
func (s *OrderService) AdvanceStatus(ctx context.Context, id int64) (*model.Order, error) {
	order, changed, err := s.orders.Advance(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if changed {
		s.publish(ctx, events.Event{
			Type:       events.OrderStatusChanged,
			OrderID:    order.ID,
			Status:     order.Status.String(),
			OccurredAt: s.now().UTC(),
		})
	}

	return order, nil
}

func (s *OrderService) ListActive(ctx context.Context, limit int) ([]model.Order, error) {
	orders, err := s.orders.ListActive(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.Error("failed to publish event", "type", e.Type, "order_id", e.OrderID, "error", err)
	}
}
