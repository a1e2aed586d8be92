package settings

// BusinessSettings is the letterhead block printed on invoices. Field names
// mirror the stored JSON documents.
type BusinessSettings struct {
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

// AppSettings holds per-installation preferences.
type AppSettings struct {
	Language string `json:"language"`
	DarkMode bool   `json:"darkMode"`
}

// DefaultAppSettings apply until the user saves a preference.
func DefaultAppSettings() AppSettings {
	return AppSettings{Language: "en"}
}

// SupportedLanguages lists the interface languages the client can render.
var SupportedLanguages = []string{"en", "gu", "hi"}
