package models

// DefaultCurrency is used when a trip is created without one.
const DefaultCurrency = "INR"

// Trip groups the members who share expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Goa 2026").
	Name string

	Description string
	Destination string

	// StartDate and EndDate are Unix seconds; zero means not set.
	StartDate int64
	EndDate   int64

	// Currency is the ISO code every expense in the trip is recorded in.
	Currency string

	// InviteCode is the short code other users join with.
	InviteCode string

	// OwnerID is the user who created the trip.
	OwnerID string

	// Members lists everyone on the trip, owner included, in join order.
	Members []Member

	CreatedAt int64
}

// HasMember reports whether userID is on the trip.
func (t *Trip) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
