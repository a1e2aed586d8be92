package plans

// Plan describes one subscription tier. The catalog is static; purchases
// are handled outside this service.
type Plan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Popular     bool     `json:"popular,omitempty"`
	Features    []string `json:"features"`
}

// Catalog returns the subscription tiers in display order.
func Catalog() []Plan {
	return []Plan{
		{
			Name:        "Basic",
			Price:       "₹999",
			Period:      "/year",
			Description: "Perfect for small shops",
			Features: []string{
				"Basic billing & invoicing",
				"Customer management",
				"Inventory tracking (100 items)",
				"Monthly reports",
				"WhatsApp sharing",
				"Cloud backup",
			},
		},
		{
			Name:        "Pro",
			Price:       "₹1,499",
			Period:      "/year",
			Description: "Most popular for growing businesses",
			Popular:     true,
			Features: []string{
				"Advanced billing & invoicing",
				"Unlimited customers",
				"Inventory tracking (1000 items)",
				"GST reports & filing",
				"Multi-language support",
				"Priority support",
				"Advanced analytics",
				"Cloud backup & sync",
			},
		},
		{
			Name:        "Advanced",
			Price:       "₹2,499",
			Period:      "/year",
			Description: "For established businesses",
			Features: []string{
				"Everything in Pro",
				"Unlimited inventory",
				"Multi-location support",
				"Custom invoice templates",
				"API access",
				"White-label options",
				"Dedicated support",
				"Advanced integrations",
			},
		},
	}
}

// ByName looks up a tier case-sensitively. Returns nil when no tier matches.
func ByName(name string) *Plan {
	for _, p := range Catalog() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}
