package models

import "github.com/shopspring/decimal"

// Settlement is a recorded repayment between trip members.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	TripID string

	// FromID is the member who paid (debtor settling up).
	FromID string

	// ToID is the member who received the payment.
	ToID string

	Amount decimal.Decimal

	// Note is an optional description for the settlement.
	Note string

	// CreatedBy is the user who recorded it.
	CreatedBy string

	CreatedAt int64
}

// Balance is a member's aggregate position in a trip.
type Balance struct {
	MemberID string
	Name     string

	// Paid is what the member paid out, for expenses and settlements.
	Paid decimal.Decimal

	// Owed is the member's total share of expenses plus settlements received.
	Owed decimal.Decimal

	// Net is Paid - Owed. Positive means the member is owed money.
	Net decimal.Decimal
}

// Transfer is one payment that moves a trip toward settled.
type Transfer struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   decimal.Decimal
}

// Summary is the settlement view of a trip at one point in time.
type Summary struct {
	TripID    string
	Currency  string
	Balances  []Balance
	Transfers []Transfer
}

// LedgerSnapshot is a trip's full ledger as of one consistent read.
type LedgerSnapshot struct {
	// Trip is read in the same transaction, so its members match the ledger.
	Trip        *Trip
	Expenses    []Expense
	Settlements []Settlement
}
