package catalog

// Product represents a catalog entry. Field names mirror the stored JSON
// documents and must not change.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Unit     string  `json:"unit,omitempty"`
	Stock    int     `json:"stock"`
	Category string  `json:"category,omitempty"`
	MinStock int     `json:"minStock,omitempty"`
}

// SampleProducts is the built-in dataset seeded into an empty catalog.
func SampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Basmati Rice", Rate: 100, Unit: "kg", Stock: 50, Category: "Grains"},
		{ID: "2", Name: "Wheat Flour", Rate: 45, Unit: "kg", Stock: 30, Category: "Grains"},
		{ID: "3", Name: "Sugar", Rate: 40, Unit: "kg", Stock: 25, Category: "Grocery"},
	}
}
