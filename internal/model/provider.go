package model

// Provider is an organization donating surplus food.
type Provider struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	City    string `json:"city"`
	Contact string `json:"contact"`
}

// ProviderContact is a provider's name and contact detail.
type ProviderContact struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
