package service

import (
	"context"
	"fmt"
	"math"

	"foodtrack/internal/model"
	"foodtrack/internal/repository"
)

type Summary struct {
	Pending       int     `json:"pending"`
	Collected     int     `json:"collected"`
	Total         int     `json:"total"`
	TotalWasteKg  float64 `json:"totalWasteKg"`
	RecyclingRate float64 `json:"recyclingRate"` // percent of collected weight
}

type ReportService struct {
	collections repository.CollectionRepository
	recyclable  map[string]bool
}

func NewReportService(collections repository.CollectionRepository, wasteTypes []model.WasteType) *ReportService {
	recyclable := make(map[string]bool, len(wasteTypes))
	for _, wt := range wasteTypes {
		recyclable[wt.ID] = wt.Recyclable
	}
	return &ReportService{collections: collections, recyclable: recyclable}
}

func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	list, err := s.collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	var (
		sum           Summary
		recycledKg    float64
		totalWeighted float64
	)
	for _, c := range list {
		switch c.Status {
		case model.CollectionCollected:
			sum.Collected++
			totalWeighted += c.WeightKg
			if s.recyclable[c.TypeID] {
				recycledKg += c.WeightKg
			}
		default:
			sum.Pending++
		}
	}

	sum.Total = sum.Pending + sum.Collected
	sum.TotalWasteKg = math.Round(totalWeighted*100) / 100
	if totalWeighted > 0 {
		sum.RecyclingRate = math.Round(recycledKg/totalWeighted*1000) / 10
	}

	return &sum, nil
}
