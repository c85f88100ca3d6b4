package service

import (
	"context"
	"fmt"

	"foodtrack/internal/model"
	"foodtrack/internal/repository"
)

type RestaurantSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListRestaurants returns id and name of every restaurant in catalog order.
func (s *CatalogService) ListRestaurants(ctx context.Context) ([]RestaurantSummary, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	out := make([]RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, RestaurantSummary{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (s *CatalogService) GetMenu(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	r, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, notFound(err)
	}
	if r.Menu == nil {
		return []model.MenuItem{}, nil
	}
	return r.Menu, nil
}
