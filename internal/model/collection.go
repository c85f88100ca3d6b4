package model

import "time"

type CollectionStatus string

const (
	CollectionPending   CollectionStatus = "Pending"
	CollectionCollected CollectionStatus = "Collected"
)

type WasteType struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Recyclable bool   `json:"recyclable"`
}

func DefaultWasteTypes() []WasteType {
	return []WasteType{
		{ID: "w1", Name: "Plastic", Recyclable: true},
		{ID: "w2", Name: "Organic"},
		{ID: "w3", Name: "Metal", Recyclable: true},
	}
}

type Collection struct {
	ID          string           `json:"id"`
	Location    string           `json:"location"`
	TypeID      string           `json:"typeId"`
	WeightKg    float64          `json:"weightKg"`
	Status      CollectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	CollectedAt *time.Time       `json:"collectedAt,omitempty"`
}
