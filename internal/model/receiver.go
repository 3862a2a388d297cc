package model

// Receiver is an organization or person claiming food.
type Receiver struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	City    string `json:"city"`
	Contact string `json:"contact"`
}
