package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "Alice@Example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")

	trip := &models.Trip{Name: "Goa", OwnerID: alice.ID}
	require.NoError(t, store.CreateTrip(ctx, trip))

	t.Run("CreateTrip generates ID, code and currency", func(t *testing.T) {
		assert.NotEmpty(t, trip.ID)
		assert.Len(t, trip.InviteCode, 8)
		assert.Equal(t, models.DefaultCurrency, trip.Currency)
		assert.NotZero(t, trip.CreatedAt)
		assert.Equal(t, []models.Member{{ID: alice.ID, Name: "Alice"}}, trip.Members)
	})

	t.Run("users are looked up case-insensitively", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.COM")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, alice.ID, got.ID)

		missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("join by invite code", func(t *testing.T) {
		found, err := store.GetTripByInviteCode(ctx, " "+trip.InviteCode+" ")
		require.NoError(t, err)
		assert.Equal(t, trip.ID, found.ID)

		require.NoError(t, store.AddTripMember(ctx, trip.ID, bob.ID))
		require.NoError(t, store.AddTripMember(ctx, trip.ID, bob.ID), "re-joining is a no-op")

		members, err := store.MembersOf(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, []models.Member{{ID: alice.ID, Name: "Alice"}, {ID: bob.ID, Name: "Bob"}}, members)
	})

	t.Run("unknown trip", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nope")
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
		_, err = store.MembersOf(ctx, "nope")
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
		_, err = store.GetTripByInviteCode(ctx, "ZZZZZZZZ")
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
		_, err = store.Snapshot(ctx, "nope")
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
		err = store.AppendExpense(ctx, &models.Expense{TripID: "nope", Title: "x", Amount: dec("1"), PayerID: alice.ID})
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
	})

	t.Run("out-of-range amounts are refused", func(t *testing.T) {
		huge := &models.Expense{
			TripID: trip.ID, Title: "Yacht", Amount: dec("100000000000000000"), Currency: trip.Currency,
			PayerID: alice.ID, SplitType: models.SplitEqual,
			Splits: []models.Split{{MemberID: alice.ID, Share: dec("100000000000000000")}},
		}
		assert.ErrorIs(t, store.AppendExpense(ctx, huge), apperr.ErrInvalidAmount)

		err := store.AppendSettlement(ctx, &models.Settlement{
			TripID: trip.ID, FromID: bob.ID, ToID: alice.ID, Amount: dec("92233720368547758.08"), CreatedBy: bob.ID,
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

		list, err := store.ListExpenses(ctx, trip.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	var dinner *models.Expense

	t.Run("AppendExpense stores splits in order", func(t *testing.T) {
		dinner = &models.Expense{
			TripID:    trip.ID,
			Title:     "Dinner",
			Amount:    dec("100.00"),
			Currency:  trip.Currency,
			PayerID:   alice.ID,
			SplitType: models.SplitEqual,
			Splits: []models.Split{
				{MemberID: bob.ID, Share: dec("33.33")},
				{MemberID: alice.ID, Share: dec("66.67")},
			},
			Notes: "beach shack",
		}
		require.NoError(t, store.AppendExpense(ctx, dinner))
		assert.NotEmpty(t, dinner.ID)
		assert.NotZero(t, dinner.CreatedAt)

		got, err := store.GetExpense(ctx, dinner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dinner", got.Title)
		assert.True(t, got.Amount.Equal(dec("100")))
		assert.Equal(t, "beach shack", got.Notes)
		require.Len(t, got.Splits, 2)
		assert.Equal(t, bob.ID, got.Splits[0].MemberID)
		assert.Equal(t, "33.33", got.Splits[0].Share.StringFixed(2))
		assert.Equal(t, dinner.ID, got.Splits[1].ExpenseID)
	})

	t.Run("ReplaceExpense swaps the splits", func(t *testing.T) {
		edited := *dinner
		edited.Amount = dec("50")
		edited.Splits = []models.Split{{MemberID: bob.ID, Share: dec("50")}}
		edited.UpdatedAt = 0
		require.NoError(t, store.ReplaceExpense(ctx, &edited))

		got, err := store.GetExpense(ctx, dinner.ID)
		require.NoError(t, err)
		assert.Equal(t, "50.00", got.Amount.StringFixed(2))
		require.Len(t, got.Splits, 1)
		assert.Equal(t, bob.ID, got.Splits[0].MemberID)

		missing := edited
		missing.ID = "nope"
		assert.ErrorIs(t, store.ReplaceExpense(ctx, &missing), apperr.ErrExpenseNotFound)
	})

	t.Run("settlements round-trip", func(t *testing.T) {
		settlement := &models.Settlement{
			TripID:    trip.ID,
			FromID:    bob.ID,
			ToID:      alice.ID,
			Amount:    dec("12.50"),
			CreatedBy: bob.ID,
		}
		require.NoError(t, store.AppendSettlement(ctx, settlement))

		list, err := store.ListSettlements(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "12.50", list[0].Amount.StringFixed(2))
		assert.Empty(t, list[0].Note)

		got, err := store.GetSettlement(ctx, settlement.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.FromID)

		removed, err := store.RemoveSettlement(ctx, settlement.ID)
		require.NoError(t, err)
		assert.Equal(t, settlement.ID, removed.ID)

		_, err = store.RemoveSettlement(ctx, settlement.ID)
		assert.ErrorIs(t, err, apperr.ErrSettlementNotFound)
		_, err = store.GetSettlement(ctx, settlement.ID)
		assert.ErrorIs(t, err, apperr.ErrSettlementNotFound)
	})

	t.Run("Snapshot and RemoveExpense", func(t *testing.T) {
		lunch := &models.Expense{
			TripID: trip.ID, Title: "Lunch", Amount: dec("20"), Currency: trip.Currency,
			PayerID: bob.ID, SplitType: models.SplitEqual,
			Splits: []models.Split{{MemberID: alice.ID, Share: dec("10")}, {MemberID: bob.ID, Share: dec("10")}},
		}
		require.NoError(t, store.AppendExpense(ctx, lunch))

		snap, err := store.Snapshot(ctx, trip.ID)
		require.NoError(t, err)
		require.NotNil(t, snap.Trip)
		assert.Equal(t, trip.Currency, snap.Trip.Currency)
		assert.Equal(t, []models.Member{{ID: alice.ID, Name: "Alice"}, {ID: bob.ID, Name: "Bob"}}, snap.Trip.Members)
		require.Len(t, snap.Expenses, 2)
		assert.Equal(t, dinner.ID, snap.Expenses[0].ID)
		assert.Equal(t, lunch.ID, snap.Expenses[1].ID)
		assert.Len(t, snap.Expenses[1].Splits, 2)

		removed, err := store.RemoveExpense(ctx, dinner.ID)
		require.NoError(t, err)
		assert.Equal(t, trip.ID, removed.TripID)

		expenses, err := store.ListExpenses(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, lunch.ID, expenses[0].ID)

		_, err = store.RemoveExpense(ctx, dinner.ID)
		assert.ErrorIs(t, err, apperr.ErrExpenseNotFound)
	})
}

func TestConcurrentAppends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, store, "owner@example.com", "Owner")
	trip := &models.Trip{Name: "Ski", Currency: "EUR", OwnerID: owner.ID}
	require.NoError(t, store.CreateTrip(ctx, trip))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.AppendExpense(ctx, &models.Expense{
				TripID: trip.ID, Title: "Lift pass", Amount: dec("30"), Currency: "EUR",
				PayerID: owner.ID, SplitType: models.SplitEqual,
				Splits: []models.Split{{MemberID: owner.ID, Share: dec("30")}},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := store.Snapshot(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, snap.Expenses, 20)
	for _, e := range snap.Expenses {
		assert.Len(t, e.Splits, 1)
	}
}

func TestListTripsForUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")

	first := &models.Trip{Name: "Goa", OwnerID: alice.ID, CreatedAt: 100}
	require.NoError(t, store.CreateTrip(ctx, first))
	second := &models.Trip{Name: "Ski", Destination: "Gulmarg", StartDate: 500, EndDate: 900, OwnerID: bob.ID, CreatedAt: 100}
	require.NoError(t, store.CreateTrip(ctx, second))
	require.NoError(t, store.AddTripMember(ctx, second.ID, alice.ID))
	require.NoError(t, store.CreateTrip(ctx, &models.Trip{Name: "Solo", OwnerID: bob.ID, CreatedAt: 50}))

	trips, err := store.ListTripsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, second.ID, trips[0].ID, "same second: later insert first")
	assert.Equal(t, "Gulmarg", trips[0].Destination)
	assert.Equal(t, int64(500), trips[0].StartDate)
	assert.Equal(t, int64(900), trips[0].EndDate)
	assert.Equal(t, []models.Member{{ID: bob.ID, Name: "Bob"}, {ID: alice.ID, Name: "Alice"}}, trips[0].Members)
	assert.Equal(t, first.ID, trips[1].ID)

	none, err := store.ListTripsForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestItineraryStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	trip := &models.Trip{Name: "Goa", OwnerID: alice.ID}
	require.NoError(t, store.CreateTrip(ctx, trip))

	later := &models.ItineraryItem{TripID: trip.ID, Title: "Dinner", StartsAt: 900, CreatedBy: alice.ID}
	open := &models.ItineraryItem{TripID: trip.ID, Title: "Souvenirs", CreatedBy: alice.ID}
	early := &models.ItineraryItem{TripID: trip.ID, Title: "Beach", StartsAt: 100, EndsAt: 400, CreatedBy: alice.ID}
	for _, item := range []*models.ItineraryItem{later, open, early} {
		require.NoError(t, store.AppendItineraryItem(ctx, item))
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	}

	titles := func() []string {
		items, err := store.ListItinerary(ctx, trip.ID)
		require.NoError(t, err)
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Title
		}
		return out
	}
	assert.Equal(t, []string{"Beach", "Dinner", "Souvenirs"}, titles())

	t.Run("replace", func(t *testing.T) {
		edited := *open
		edited.Title = "Breakfast"
		edited.StartsAt = 50
		edited.UpdatedAt = open.CreatedAt + 10
		require.NoError(t, store.ReplaceItineraryItem(ctx, &edited))

		got, err := store.GetItineraryItem(ctx, open.ID)
		require.NoError(t, err)
		assert.Equal(t, "Breakfast", got.Title)
		assert.Equal(t, open.CreatedAt, got.CreatedAt)
		assert.Equal(t, open.CreatedAt+10, got.UpdatedAt)
		assert.Equal(t, []string{"Breakfast", "Beach", "Dinner"}, titles())

		missing := edited
		missing.ID = "missing"
		assert.ErrorIs(t, store.ReplaceItineraryItem(ctx, &missing), apperr.ErrItineraryNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		removed, err := store.RemoveItineraryItem(ctx, later.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dinner", removed.Title)

		_, err = store.RemoveItineraryItem(ctx, later.ID)
		assert.ErrorIs(t, err, apperr.ErrItineraryNotFound)
		_, err = store.GetItineraryItem(ctx, later.ID)
		assert.ErrorIs(t, err, apperr.ErrItineraryNotFound)
		assert.Len(t, titles(), 2)
	})

	t.Run("unknown trip", func(t *testing.T) {
		err := store.AppendItineraryItem(ctx, &models.ItineraryItem{TripID: "nope", Title: "x"})
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
		_, err = store.ListItinerary(ctx, "nope")
		assert.ErrorIs(t, err, apperr.ErrTripNotFound)
	})
}

func TestToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "12.50", want: 1250},
		{in: "0.005", want: 1},
		{in: "-3.21", want: -321},
		{in: "92233720368547758.07", want: 9223372036854775807},
		{in: "92233720368547758.08", wantErr: true},
		{in: "-92233720368547758.08", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toCents(dec(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := newInviteCode()
		assert.Len(t, code, 8)
		assert.Regexp(t, `^[0-9A-F]{8}$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90)
}
