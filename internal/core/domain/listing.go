package domain

import (
	"strings"
	"time"
)

// DateLayout is the storage and display format for expiry dates.
const DateLayout = "2006-01-02"

// FoodListing is one quantity of food available for donation or claim.
// Listings are created through the listing writer and never updated.
type FoodListing struct {
	// ID is the store-assigned row identifier. Zero before insert.
	ID int64

	// FoodName is the name of the food item.
	FoodName string

	// Quantity is the number of units offered. Must be at least 1.
	Quantity int

	// ExpiryDate is the day the food expires. Only the date part is stored.
	ExpiryDate time.Time

	// ProviderID references a known provider.
	ProviderID int64

	// ProviderName is the provider's display name as entered on the form.
	ProviderName string

	// ProviderLocation is the city the food is available in.
	ProviderLocation string

	// FoodType is the food category (e.g. "Vegetarian", "Non-Vegetarian", "Vegan").
	FoodType string

	// MealType is the meal the food suits (e.g. "Breakfast", "Dinner").
	MealType string
}

// Validate checks the constraints a listing must satisfy before insert.
// Returns a *ValidationError for the first field that fails.
func (l *FoodListing) Validate() error {
	if l.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if l.ExpiryDate.IsZero() {
		return &ValidationError{Field: "expiry_date", Reason: "is required"}
	}
	if l.ProviderID < 0 {
		return &ValidationError{Field: "provider_id", Reason: "must not be negative"}
	}
	return nil
}

// CheckProvider rejects a ProviderID that is not among the known IDs.
// Validate checks only the shape of the ID; this checks that it exists.
func (l *FoodListing) CheckProvider(known []int64) error {
	for _, id := range known {
		if id == l.ProviderID {
			return nil
		}
	}
	return &ValidationError{Field: "provider_id", Reason: "must be a known provider"}
}

// ExpiryString returns the expiry date in DateLayout.
func (l *FoodListing) ExpiryString() string {
	return l.ExpiryDate.Format(DateLayout)
}

// ParseExpiryDate parses a YYYY-MM-DD date as entered on the form.
func ParseExpiryDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "expiry_date", Reason: "must be YYYY-MM-DD"}
	}
	return t, nil
}

// Provider is an entity supplying food listings.
type Provider struct {
	ID      int64
	Name    string
	Type    string
	Address string
	City    string
	Contact string
}

// Receiver is an entity eligible to claim listings.
type Receiver struct {
	ID      int64
	Name    string
	Type    string
	City    string
	Contact string
}

// ClaimStatus is the state of a claim against a listing.
type ClaimStatus string

// Known claim statuses. The store may hold other values; they are counted as-is.
const (
	ClaimPending   ClaimStatus = "Pending"
	ClaimCompleted ClaimStatus = "Completed"
	ClaimCancelled ClaimStatus = "Cancelled"
)

// Claim is a receiver's request against a listing.
type Claim struct {
	ID         int64
	FoodID     int64
	ReceiverID int64
	Status     ClaimStatus
	Timestamp  time.Time
}
