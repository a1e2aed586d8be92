package directory

// Customer represents a directory entry. The aggregate fields are maintained
// by hand, never recomputed from invoices. Field names mirror the stored JSON
// documents.
type Customer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email,omitempty"`
	Address       string  `json:"address"`
	GSTNumber     string  `json:"gstNumber,omitempty"`
	TotalOrders   int     `json:"totalOrders"`
	TotalAmount   float64 `json:"totalAmount"`
	LastOrderDate string  `json:"lastOrderDate,omitempty"`
}

// SampleCustomers returns the demo directory used for seeding fresh
// installations.
func SampleCustomers() []Customer {
	return []Customer{
		{
			ID: "1", Name: "Rajesh Kumar", Phone: "+91 9876543210",
			Email: "rajesh@email.com", Address: "123 MG Road, Mumbai",
			GSTNumber: "27ABCDE1234F1Z5", TotalOrders: 15, TotalAmount: 45000,
			LastOrderDate: "2024-01-15",
		},
		{
			ID: "2", Name: "Priya Sharma", Phone: "+91 9876543211",
			Address: "456 Park Street, Delhi", TotalOrders: 8, TotalAmount: 22000,
			LastOrderDate: "2024-01-10",
		},
	}
}

// Totals summarises the directory for the stats cards.
type Totals struct {
	Customers   int     `json:"customers"`
	TotalOrders int     `json:"totalOrders"`
	TotalAmount float64 `json:"totalAmount"`
}
