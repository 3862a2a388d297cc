package model

import "time"

// ClaimStatus is the lifecycle state of a claim.
type ClaimStatus string

// Claim statuses.
const (
	ClaimPending   ClaimStatus = "Pending"
	ClaimCompleted ClaimStatus = "Completed"
	ClaimCancelled ClaimStatus = "Cancelled"
)

// Claim is a receiver's request against a listing.
type Claim struct {
	ID         int64       `json:"id"`
	ListingID  int64       `json:"listing_id"`
	ReceiverID int64       `json:"receiver_id"`
	Status     ClaimStatus `json:"status"`
	Timestamp  time.Time   `json:"timestamp"`

	// Joined fields (not always populated).
	FoodName     string `json:"food_name,omitempty"`
	ReceiverName string `json:"receiver_name,omitempty"`
}

// Valid reports whether s is a known status.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimCompleted, ClaimCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s ClaimStatus) Terminal() bool {
	return s == ClaimCompleted || s == ClaimCancelled
}

// CanTransition reports whether a claim may move from one status to another.
// Only Pending claims move, and only to Completed or Cancelled.
func CanTransition(from, to ClaimStatus) bool {
	return from == ClaimPending && to.Terminal()
}
