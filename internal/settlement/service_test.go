package settlement

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
)

type recordingSink struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recordingSink) Publish(_ context.Context, e models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) actions() []models.EventAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.EventAction, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

type fixture struct {
	svc     *Service
	store   *sqlite.SQLiteStore
	sink    *recordingSink
	tripID  string
	a, b, c string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	ids := make([]string, 3)
	for i, name := range []string{"Asha", "Bilal", "Chen"} {
		user := models.NewUser(name+"@example.com", name, "hash")
		require.NoError(t, store.CreateUser(ctx, user))
		ids[i] = user.ID
	}

	trip := &models.Trip{Name: "Hampi", Currency: "INR", OwnerID: ids[0]}
	require.NoError(t, store.CreateTrip(ctx, trip))
	require.NoError(t, store.AddTripMember(ctx, trip.ID, ids[1]))
	require.NoError(t, store.AddTripMember(ctx, trip.ID, ids[2]))

	sink := &recordingSink{}
	return &fixture{
		svc:    NewService(store, store, sink),
		store:  store,
		sink:   sink,
		tripID: trip.ID,
		a:      ids[0],
		b:      ids[1],
		c:      ids[2],
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func equalAmong(ids ...string) []calculator.Participant {
	ps := make([]calculator.Participant, len(ids))
	for i, id := range ids {
		ps[i] = calculator.Participant{MemberID: id}
	}
	return ps
}

func netOf(summary *models.Summary) map[string]string {
	out := make(map[string]string, len(summary.Balances))
	for _, b := range summary.Balances {
		out[b.MemberID] = b.Net.StringFixed(2)
	}
	return out
}

func TestCreateExpenseAndSummary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	expense, err := f.svc.CreateExpense(ctx, ExpenseInput{
		TripID:       f.tripID,
		Title:        "Houseboat",
		Amount:       dec("90"),
		PayerID:      f.a,
		SplitType:    models.SplitEqual,
		Participants: equalAmong(f.a, f.b, f.c),
	})
	require.NoError(t, err)
	assert.Equal(t, "INR", expense.Currency)
	require.Len(t, expense.Splits, 3)
	for _, s := range expense.Splits {
		assert.Equal(t, expense.ID, s.ExpenseID)
	}

	summary, err := f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{f.a: "60.00", f.b: "-30.00", f.c: "-30.00"}, netOf(summary))

	require.Len(t, summary.Transfers, 2)
	total := decimal.Zero
	for _, tr := range summary.Transfers {
		assert.Equal(t, f.a, tr.ToID)
		assert.Equal(t, "Asha", tr.ToName)
		assert.Equal(t, "30.00", tr.Amount.StringFixed(2))
		total = total.Add(tr.Amount)
	}
	assert.Equal(t, "60.00", total.StringFixed(2))

	assert.Equal(t, []models.EventAction{models.ActionAdd}, f.sink.actions())
	assert.Equal(t, expense, f.sink.events[0].Expense)
	assert.Equal(t, models.ChannelExpense, f.sink.events[0].Channel)
}

func TestCreateExpenseRejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   ExpenseInput
		want error
	}{
		{
			name: "custom shares short of amount",
			in: ExpenseInput{
				TripID: f.tripID, Title: "Tickets", Amount: dec("100"), PayerID: f.a,
				SplitType: models.SplitCustom,
				Participants: []calculator.Participant{
					{MemberID: f.a, Share: dec("40")},
					{MemberID: f.b, Share: dec("40")},
				},
			},
			want: apperr.ErrSplitSumMismatch,
		},
		{
			name: "unknown trip",
			in:   ExpenseInput{TripID: "missing", Title: "x", Amount: dec("1"), PayerID: f.a, SplitType: models.SplitEqual, Participants: equalAmong(f.a)},
			want: apperr.ErrTripNotFound,
		},
		{
			name: "payer not on trip",
			in:   ExpenseInput{TripID: f.tripID, Title: "x", Amount: dec("1"), PayerID: "stranger", SplitType: models.SplitEqual, Participants: equalAmong(f.a)},
			want: apperr.ErrMemberNotFound,
		},
		{
			name: "participant not on trip",
			in:   ExpenseInput{TripID: f.tripID, Title: "x", Amount: dec("1"), PayerID: f.a, SplitType: models.SplitEqual, Participants: equalAmong(f.a, "stranger")},
			want: apperr.ErrMemberNotFound,
		},
		{
			name: "missing title",
			in:   ExpenseInput{TripID: f.tripID, Title: "  ", Amount: dec("1"), PayerID: f.a, SplitType: models.SplitEqual, Participants: equalAmong(f.a)},
			want: apperr.ErrInvalidInput,
		},
		{
			name: "zero amount",
			in:   ExpenseInput{TripID: f.tripID, Title: "x", Amount: decimal.Zero, PayerID: f.a, SplitType: models.SplitEqual, Participants: equalAmong(f.a)},
			want: apperr.ErrInvalidAmount,
		},
		{
			name: "bad split type",
			in:   ExpenseInput{TripID: f.tripID, Title: "x", Amount: dec("1"), PayerID: f.a, SplitType: "weighted", Participants: equalAmong(f.a)},
			want: apperr.ErrInvalidSplitType,
		},
		{
			name: "no participants",
			in:   ExpenseInput{TripID: f.tripID, Title: "x", Amount: dec("1"), PayerID: f.a, SplitType: models.SplitEqual},
			want: apperr.ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, err := f.svc.CreateExpense(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, expense)
		})
	}

	expenses, err := f.svc.ListExpenses(ctx, f.tripID)
	require.NoError(t, err)
	assert.Empty(t, expenses, "rejected expenses must not reach the ledger")
	assert.Empty(t, f.sink.actions())
}

func TestDeleteExpense(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	kept, err := f.svc.CreateExpense(ctx, ExpenseInput{
		TripID: f.tripID, Title: "Fuel", Amount: dec("90"), PayerID: f.a,
		SplitType: models.SplitEqual, Participants: equalAmong(f.a, f.b, f.c),
	})
	require.NoError(t, err)
	dropped, err := f.svc.CreateExpense(ctx, ExpenseInput{
		TripID: f.tripID, Title: "Snacks", Amount: dec("40"), PayerID: f.b,
		SplitType: models.SplitEqual, Participants: equalAmong(f.a, f.b),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteExpense(ctx, dropped.ID))

	summary, err := f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{f.a: "60.00", f.b: "-30.00", f.c: "-30.00"}, netOf(summary))

	assert.ErrorIs(t, f.svc.DeleteExpense(ctx, dropped.ID), apperr.ErrExpenseNotFound)

	expenses, err := f.svc.ListExpenses(ctx, f.tripID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, kept.ID, expenses[0].ID)

	assert.Equal(t, []models.EventAction{models.ActionAdd, models.ActionAdd, models.ActionDelete}, f.sink.actions())
	last := f.sink.events[2]
	assert.Equal(t, dropped.ID, last.ID)
	assert.Equal(t, f.tripID, last.TripID)
	assert.Nil(t, last.Expense)
}

func TestUpdateExpense(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	expense, err := f.svc.CreateExpense(ctx, ExpenseInput{
		TripID: f.tripID, Title: "Museum", Amount: dec("30"), PayerID: f.a,
		SplitType: models.SplitEqual, Participants: equalAmong(f.a, f.b, f.c),
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateExpense(ctx, expense.ID, ExpenseInput{
		Title: "Museum + guide", Amount: dec("100"), PayerID: f.b,
		SplitType: models.SplitPercentage,
		Participants: []calculator.Participant{
			{MemberID: f.a, Percent: dec("33.3")},
			{MemberID: f.b, Percent: dec("33.3")},
			{MemberID: f.c, Percent: dec("33.4")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, expense.ID, updated.ID)
	assert.Equal(t, expense.CreatedAt, updated.CreatedAt)

	summary, err := f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{f.a: "-33.30", f.b: "66.70", f.c: "-33.40"}, netOf(summary))

	_, err = f.svc.UpdateExpense(ctx, "missing", ExpenseInput{})
	assert.ErrorIs(t, err, apperr.ErrExpenseNotFound)

	_, err = f.svc.UpdateExpense(ctx, expense.ID, ExpenseInput{TripID: "other"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	// Rejected edits leave the stored expense untouched.
	_, err = f.svc.UpdateExpense(ctx, expense.ID, ExpenseInput{
		Title: "x", Amount: dec("10"), PayerID: f.a, SplitType: models.SplitCustom,
		Participants: []calculator.Participant{{MemberID: f.a, Share: dec("1")}},
	})
	assert.ErrorIs(t, err, apperr.ErrSplitSumMismatch)
	stored, err := f.svc.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", stored.Amount.StringFixed(2))

	assert.Equal(t, []models.EventAction{models.ActionAdd, models.ActionUpdate}, f.sink.actions())
}

func TestSettlements(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateExpense(ctx, ExpenseInput{
		TripID: f.tripID, Title: "Stay", Amount: dec("90"), PayerID: f.a,
		SplitType: models.SplitEqual, Participants: equalAmong(f.a, f.b, f.c),
	})
	require.NoError(t, err)

	settlement, err := f.svc.RecordSettlement(ctx, SettlementInput{
		TripID: f.tripID, FromID: f.b, ToID: f.a, Amount: dec("30"), CreatedBy: f.b,
	})
	require.NoError(t, err)

	summary, err := f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{f.a: "30.00", f.b: "0.00", f.c: "-30.00"}, netOf(summary))
	require.Len(t, summary.Transfers, 1)
	assert.Equal(t, f.c, summary.Transfers[0].FromID)

	listed, err := f.svc.ListSettlements(ctx, f.tripID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, settlement.ID, listed[0].ID)

	require.NoError(t, f.svc.DeleteSettlement(ctx, settlement.ID))
	summary, err = f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)
	assert.Len(t, summary.Transfers, 2)

	_, err = f.svc.RecordSettlement(ctx, SettlementInput{TripID: f.tripID, FromID: f.b, ToID: f.b, Amount: dec("1")})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = f.svc.RecordSettlement(ctx, SettlementInput{TripID: f.tripID, FromID: f.b, ToID: "stranger", Amount: dec("1")})
	assert.ErrorIs(t, err, apperr.ErrMemberNotFound)
	_, err = f.svc.RecordSettlement(ctx, SettlementInput{TripID: f.tripID, FromID: f.b, ToID: f.a, Amount: dec("-1")})
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
	assert.ErrorIs(t, f.svc.DeleteSettlement(ctx, settlement.ID), apperr.ErrSettlementNotFound)

	assert.Equal(t, []models.EventAction{models.ActionAdd, models.ActionSettle, models.ActionUnsettle}, f.sink.actions())
}

func TestSummaryIsStableAndZeroSum(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := rand.New(rand.NewPCG(3, 5))
	people := []string{f.a, f.b, f.c}

	var live []string
	for i := 0; i < 40; i++ {
		if len(live) > 0 && r.IntN(4) == 0 {
			idx := r.IntN(len(live))
			require.NoError(t, f.svc.DeleteExpense(ctx, live[idx]))
			live = append(live[:idx], live[idx+1:]...)
		} else {
			n := r.IntN(3) + 1
			expense, err := f.svc.CreateExpense(ctx, ExpenseInput{
				TripID:       f.tripID,
				Title:        "Random",
				Amount:       decimal.New(r.Int64N(100_000)+1, -2),
				PayerID:      people[r.IntN(3)],
				SplitType:    models.SplitEqual,
				Participants: equalAmong(people[:n]...),
			})
			require.NoError(t, err)
			live = append(live, expense.ID)
		}

		summary, err := f.svc.GetSettlementSummary(ctx, f.tripID)
		require.NoError(t, err)
		total := decimal.Zero
		for _, b := range summary.Balances {
			total = total.Add(b.Net)
		}
		require.True(t, total.IsZero(), "balances sum to %s", total)
	}

	first, err := f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := f.svc.GetSettlementSummary(ctx, f.tripID)
			if assert.NoError(t, err) {
				assert.Equal(t, first, again)
			}
		}()
	}
	wg.Wait()
}

func TestSummaryUnknownTrip(t *testing.T) {
	f := setup(t)
	_, err := f.svc.GetSettlementSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrTripNotFound)
}

func TestSummaryIncludesLateJoiner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateExpense(ctx, ExpenseInput{
		TripID: f.tripID, Title: "Bikes", Amount: dec("30"), PayerID: f.a,
		SplitType: models.SplitEqual, Participants: equalAmong(f.a, f.b, f.c),
	})
	require.NoError(t, err)

	dana := models.NewUser("dana@example.com", "Dana", "hash")
	require.NoError(t, f.store.CreateUser(ctx, dana))
	require.NoError(t, f.store.AddTripMember(ctx, f.tripID, dana.ID))

	summary, err := f.svc.GetSettlementSummary(ctx, f.tripID)
	require.NoError(t, err)
	require.Len(t, summary.Balances, 4)
	assert.Equal(t, map[string]string{f.a: "20.00", f.b: "-10.00", f.c: "-10.00", dana.ID: "0.00"}, netOf(summary))
	for _, tr := range summary.Transfers {
		assert.NotEqual(t, dana.ID, tr.FromID)
		assert.NotEqual(t, dana.ID, tr.ToID)
	}
}
