package model

import (
	"encoding/json"
	"time"
)

type Order struct {
	ID           int64             `json:"id"`
	RestaurantID int64             `json:"restaurantId"`
	Items        []json.RawMessage `json:"items"` // opaque, as sent by the client
	Total        float64           `json:"total"`
	Status       Status            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	items := make([]json.RawMessage, len(o.Items))
	for i, it := range o.Items {
		items[i] = append(json.RawMessage(nil), it...)
	}
	o.Items = items
	return o
}
