package models

import "github.com/shopspring/decimal"

// SplitType selects how an expense amount is divided among participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitCustom     SplitType = "custom"
)

// Expense is one payment made by a member on behalf of some participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	TripID string

	// Title is a short description (e.g., "Dinner at the beach").
	Title string

	// Amount is the total paid, positive, at cent precision.
	Amount decimal.Decimal

	// Currency is copied from the trip when the expense is recorded.
	Currency string

	// PayerID is the member who paid.
	PayerID string

	SplitType SplitType

	// Splits always sum exactly to Amount.
	Splits []Split

	Notes string

	CreatedAt int64
	UpdatedAt int64
}

// Split is one participant's share of an expense.
type Split struct {
	ExpenseID string
	MemberID  string
	Share     decimal.Decimal
}
