package model

import "time"

// DateLayout is the storage and wire format of listing expiry dates.
const DateLayout = "2006-01-02"

// Listing is a food item available for claim.
type Listing struct {
	ID           int64     `json:"id"`
	FoodName     string    `json:"food_name"`
	Quantity     int       `json:"quantity"`
	ExpiryDate   time.Time `json:"expiry_date"`
	ProviderID   int64     `json:"provider_id"`
	ProviderType string    `json:"provider_type"`
	Location     string    `json:"location"`
	FoodType     string    `json:"food_type"`
	MealType     string    `json:"meal_type"`
	ImageMime    string    `json:"image_mime,omitempty"`
}

// ListingFilter selects listings. Zero-valued fields are ignored; the rest
// are combined with logical AND.
type ListingFilter struct {
	City        string `json:"city,omitempty"`
	MealType    string `json:"meal_type,omitempty"`
	FoodType    string `json:"food_type,omitempty"`
	ProviderID  int64  `json:"provider_id,omitempty"`
	MinQuantity int    `json:"min_quantity,omitempty"`
}

// FilterOptions holds the distinct values a listing filter can take.
type FilterOptions struct {
	Cities    []string `json:"cities"`
	FoodTypes []string `json:"food_types"`
	MealTypes []string `json:"meal_types"`
}
