package model

type MenuItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Restaurant struct {
	ID   int64      `json:"id"`
	Name string     `json:"name"`
	Menu []MenuItem `json:"menu"`
}

// DefaultCatalog is the restaurant list the service starts with.
func DefaultCatalog() []Restaurant {
	return []Restaurant{
		{
			ID:   1,
			Name: "KFC - Crispy & Hot",
			Menu: []MenuItem{
				{ID: 1, Name: "Zinger Burger", Price: 150},
				{ID: 2, Name: "Hot Wings (6 Pcs)", Price: 200},
				{ID: 3, Name: "Chicken Bucket (Small)", Price: 450},
			},
		},
		{
			ID:   2,
			Name: "Dominos - Pizza Hub",
			Menu: []MenuItem{
				{ID: 1, Name: "Cheese Burst Pizza (Medium)", Price: 350},
				{ID: 2, Name: "Garlic Bread Sticks", Price: 120},
				{ID: 3, Name: "Pasta Italiano (Red Sauce)", Price: 220},
			},
		},
	}
}
