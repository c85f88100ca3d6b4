package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodtrack/internal/events"
	"foodtrack/internal/model"
	"foodtrack/internal/repository"
)

type CreateCollectionInput struct {
	Location string
	TypeID   string
	WeightKg float64
}

type CollectionService struct {
	repo       repository.CollectionRepository
	wasteTypes []model.WasteType
	publisher  events.Publisher
	now        func() time.Time
}

func NewCollectionService(repo repository.CollectionRepository, wasteTypes []model.WasteType, publisher events.Publisher) *CollectionService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CollectionService{
		repo:       repo,
		wasteTypes: wasteTypes,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *CollectionService) WasteTypes() []model.WasteType {
	return append([]model.WasteType(nil), s.wasteTypes...)
}

func (s *CollectionService) Create(ctx context.Context, in CreateCollectionInput) (*model.Collection, error) {
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return nil, fmt.Errorf("location is required: %w", ErrInvalidRequest)
	}
	if !s.knownType(in.TypeID) {
		return nil, fmt.Errorf("unknown waste type %q: %w", in.TypeID, ErrInvalidRequest)
	}
	if in.WeightKg < 0 {
		return nil, fmt.Errorf("negative weight: %w", ErrInvalidRequest)
	}

	c := &model.Collection{
		ID:        uuid.NewString(),
		Location:  location,
		TypeID:    in.TypeID,
		WeightKg:  in.WeightKg,
		Status:    model.CollectionPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.publish(ctx, events.Event{
		Type:         events.CollectionCreated,
		CollectionID: c.ID,
		Status:       string(c.Status),
		OccurredAt:   c.CreatedAt,
	})

	return c, nil
}

func (s *CollectionService) List(ctx context.Context) ([]model.Collection, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return list, nil
}

// MarkCollected is idempotent: a collected entry keeps its first collectedAt.
func (s *CollectionService) MarkCollected(ctx context.Context, id string) (*model.Collection, error) {
	c, changed, err := s.repo.MarkCollected(ctx, id, s.now().UTC())
	if err != nil {
		return nil, notFound(err)
	}

	if changed {
		s.publish(ctx, events.Event{
			Type:         events.CollectionCollected,
			CollectionID: c.ID,
			Status:       string(c.Status),
			OccurredAt:   *c.CollectedAt,
		})
	}

	return c, nil
}

func (s *CollectionService) knownType(id string) bool {
	for _, wt := range s.wasteTypes {
		if wt.ID == id {
			return true
		}
	}
	return false
}

func (s *CollectionService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.Error("failed to publish event", "type", e.Type, "collection_id", e.CollectionID, "error", err)
	}
}
