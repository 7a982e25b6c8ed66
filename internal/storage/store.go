// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Store defines everything the services persist: users, trips with their members,
// each trip's ledger of expenses and settlements, and its itinerary.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	TripStore
	LedgerStore
	ItineraryStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TripStore persists trips and their membership.
type TripStore interface {
	// CreateTrip persists a new trip with its owner as the first member.
	// Empty ID, InviteCode and CreatedAt fields are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip returns the trip with its members, or a TripNotFound error.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// GetTripByInviteCode returns the trip with the code, or a TripNotFound error.
	GetTripByInviteCode(ctx context.Context, code string) (*models.Trip, error)

	// AddTripMember adds userID to the trip. Adding an existing member is a no-op.
	AddTripMember(ctx context.Context, tripID, userID string) error

	// MembersOf lists the trip's members in join order.
	MembersOf(ctx context.Context, tripID string) ([]models.Member, error)

	// ListTripsForUser returns the trips userID is a member of, newest first.
	ListTripsForUser(ctx context.Context, userID string) ([]models.Trip, error)
}

// LedgerStore persists expenses and settlements. Every write is atomic: an expense and
// its splits are stored together or not at all.
type LedgerStore interface {
	AppendExpense(ctx context.Context, expense *models.Expense) error

	// ReplaceExpense overwrites an existing expense and all its splits.
	ReplaceExpense(ctx context.Context, expense *models.Expense) error

	// RemoveExpense deletes the expense and returns what was removed.
	RemoveExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns the trip's expenses in the order they were recorded.
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)

	AppendSettlement(ctx context.Context, settlement *models.Settlement) error

	// RemoveSettlement deletes the settlement and returns what was removed.
	RemoveSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlements(ctx context.Context, tripID string) ([]models.Settlement, error)

	// Snapshot reads the trip with its members, expenses and settlements in one
	// consistent read.
	Snapshot(ctx context.Context, tripID string) (*models.LedgerSnapshot, error)
}

// ItineraryStore persists each trip's planned activities.
type ItineraryStore interface {
	AppendItineraryItem(ctx context.Context, item *models.ItineraryItem) error

	// ReplaceItineraryItem overwrites an existing item's editable fields.
	ReplaceItineraryItem(ctx context.Context, item *models.ItineraryItem) error

	// RemoveItineraryItem deletes the item and returns what was removed.
	RemoveItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error)

	GetItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error)

	// ListItinerary returns scheduled items by start time, then unscheduled ones.
	ListItinerary(ctx context.Context, tripID string) ([]models.ItineraryItem, error)
}
