package models

// ItineraryItem is one planned stop or activity on a trip.
type ItineraryItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	TripID string

	// Title is required (e.g., "Dudhsagar falls").
	Title string

	Description string
	Location    string

	// StartsAt and EndsAt are Unix seconds; zero means unscheduled.
	StartsAt int64
	EndsAt   int64

	// CreatedBy is the member who added the item.
	CreatedBy string

	CreatedAt int64
	UpdatedAt int64
}
