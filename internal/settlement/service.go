// Package settlement orchestrates the split and settlement engine for callers.
//
// Service validates requests against the trip's member registry, runs the calculator,
// writes to the ledger store and hands an event to the injected sink. It owns no
// transport and no global state.
package settlement

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

// Ledger is the append-only record of a trip's expenses and settlements. Writes must be
// atomic and Snapshot must never observe a partially written expense.
type Ledger interface {
	AppendExpense(ctx context.Context, expense *models.Expense) error
	ReplaceExpense(ctx context.Context, expense *models.Expense) error
	RemoveExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)
	AppendSettlement(ctx context.Context, settlement *models.Settlement) error
	RemoveSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlements(ctx context.Context, tripID string) ([]models.Settlement, error)
	Snapshot(ctx context.Context, tripID string) (*models.LedgerSnapshot, error)
}

// MemberRegistry resolves trips and their members.
type MemberRegistry interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	MembersOf(ctx context.Context, tripID string) ([]models.Member, error)
}

// EventSink receives ledger change notifications. Delivery is the sink's business.
type EventSink interface {
	Publish(ctx context.Context, event models.Event)
}

// ExpenseInput describes an expense to create or the replacement for an existing one.
type ExpenseInput struct {
	TripID       string
	Title        string
	Amount       decimal.Decimal
	PayerID      string
	SplitType    models.SplitType
	Participants []calculator.Participant
	Notes        string
}

// SettlementInput describes a repayment between two members.
type SettlementInput struct {
	TripID    string
	FromID    string
	ToID      string
	Amount    decimal.Decimal
	Note      string
	CreatedBy string
}

// Service is the entry point to the engine.
type Service struct {
	ledger   Ledger
	registry MemberRegistry
	events   EventSink
	now      func() time.Time
}

// NewService wires a Service. A nil sink discards events.
func NewService(ledger Ledger, registry MemberRegistry, events EventSink) *Service {
	if events == nil {
		events = discard{}
	}
	return &Service{
		ledger:   ledger,
		registry: registry,
		events:   events,
		now:      time.Now,
	}
}

// CreateExpense validates the input, computes the splits and appends the expense.
// Nothing is written when validation or split computation fails.
func (s *Service) CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	trip, err := s.registry.GetTrip(ctx, in.TripID)
	if err != nil {
		return nil, err
	}

	splits, err := s.prepare(trip, in)
	if err != nil {
		slog.Warn("CreateExpense rejected", "trip_id", in.TripID, "kind", apperr.KindOf(err), "error", err)
		return nil, err
	}

	now := s.now().Unix()
	expense := newExpense(uuid.New().String(), trip, in, splits, now, now)
	if err := s.ledger.AppendExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "trip_id", in.TripID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"trip_id", expense.TripID,
		"expense_id", expense.ID,
		"amount", expense.Amount.StringFixed(2),
		"split_type", expense.SplitType,
		"participants", len(expense.Splits),
	)
	s.events.Publish(ctx, models.Event{Channel: models.ChannelExpense, Action: models.ActionAdd, TripID: expense.TripID, Expense: expense, At: now})
	return expense, nil
}

// UpdateExpense replaces an existing expense. The trip cannot change.
func (s *Service) UpdateExpense(ctx context.Context, expenseID string, in ExpenseInput) (*models.Expense, error) {
	existing, err := s.ledger.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if in.TripID != "" && in.TripID != existing.TripID {
		return nil, apperr.New(apperr.KindInvalidInput, "expense %s belongs to a different trip", expenseID)
	}
	in.TripID = existing.TripID

	trip, err := s.registry.GetTrip(ctx, in.TripID)
	if err != nil {
		return nil, err
	}

	splits, err := s.prepare(trip, in)
	if err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", expenseID, "kind", apperr.KindOf(err), "error", err)
		return nil, err
	}

	now := s.now().Unix()
	expense := newExpense(existing.ID, trip, in, splits, existing.CreatedAt, now)
	if err := s.ledger.ReplaceExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "trip_id", expense.TripID, "expense_id", expense.ID)
	s.events.Publish(ctx, models.Event{Channel: models.ChannelExpense, Action: models.ActionUpdate, TripID: expense.TripID, Expense: expense, At: now})
	return expense, nil
}

// DeleteExpense removes an expense from its trip's ledger.
func (s *Service) DeleteExpense(ctx context.Context, expenseID string) error {
	removed, err := s.ledger.RemoveExpense(ctx, expenseID)
	if err != nil {
		return err
	}

	slog.Info("Expense deleted", "trip_id", removed.TripID, "expense_id", expenseID)
	s.events.Publish(ctx, models.Event{
		Channel: models.ChannelExpense,
		Action:  models.ActionDelete,
		TripID:  removed.TripID,
		ID:      expenseID,
		At:      s.now().Unix(),
	})
	return nil
}

// GetExpense returns one expense.
func (s *Service) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.ledger.GetExpense(ctx, expenseID)
}

// ListExpenses returns the trip's expenses in ledger order.
func (s *Service) ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	return s.ledger.ListExpenses(ctx, tripID)
}

// RecordSettlement stores a repayment from one member to another.
func (s *Service) RecordSettlement(ctx context.Context, in SettlementInput) (*models.Settlement, error) {
	members, err := s.registry.MembersOf(ctx, in.TripID)
	if err != nil {
		return nil, err
	}
	if err := calculator.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.FromID == in.ToID {
		return nil, apperr.New(apperr.KindInvalidInput, "a member cannot settle with themselves")
	}
	known := memberSet(members)
	for _, id := range []string{in.FromID, in.ToID} {
		if !known[id] {
			return nil, apperr.New(apperr.KindMemberNotFound, "member %s is not on trip %s", id, in.TripID)
		}
	}

	settlement := &models.Settlement{
		ID:        uuid.New().String(),
		TripID:    in.TripID,
		FromID:    in.FromID,
		ToID:      in.ToID,
		Amount:    in.Amount,
		Note:      strings.TrimSpace(in.Note),
		CreatedBy: in.CreatedBy,
		CreatedAt: s.now().Unix(),
	}
	if err := s.ledger.AppendSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "trip_id", in.TripID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"trip_id", settlement.TripID,
		"settlement_id", settlement.ID,
		"from", settlement.FromID,
		"to", settlement.ToID,
		"amount", settlement.Amount.StringFixed(2),
	)
	s.events.Publish(ctx, models.Event{
		Channel:    models.ChannelExpense,
		Action:     models.ActionSettle,
		TripID:     settlement.TripID,
		Settlement: settlement,
		At:         settlement.CreatedAt,
	})
	return settlement, nil
}

// GetSettlement returns one settlement.
func (s *Service) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	return s.ledger.GetSettlement(ctx, settlementID)
}

// ListSettlements returns the trip's settlements, oldest first.
func (s *Service) ListSettlements(ctx context.Context, tripID string) ([]models.Settlement, error) {
	return s.ledger.ListSettlements(ctx, tripID)
}

// DeleteSettlement removes a recorded repayment.
func (s *Service) DeleteSettlement(ctx context.Context, settlementID string) error {
	removed, err := s.ledger.RemoveSettlement(ctx, settlementID)
	if err != nil {
		return err
	}

	slog.Info("Settlement deleted", "trip_id", removed.TripID, "settlement_id", settlementID)
	s.events.Publish(ctx, models.Event{
		Channel: models.ChannelExpense,
		Action:  models.ActionUnsettle,
		TripID:  removed.TripID,
		ID:      settlementID,
		At:      s.now().Unix(),
	})
	return nil
}

// GetSettlementSummary computes balances and transfers from a fresh ledger snapshot.
// Members, expenses and settlements all come from that one snapshot. It never writes,
// so concurrent and repeated calls are safe and, for an unchanged ledger, return
// identical results.
func (s *Service) GetSettlementSummary(ctx context.Context, tripID string) (*models.Summary, error) {
	snap, err := s.ledger.Snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip := snap.Trip

	positions := calculator.Positions(trip.Members, snap.Expenses, snap.Settlements)
	net := make(map[string]decimal.Decimal, len(positions))
	for _, p := range positions {
		net[p.MemberID] = p.Net
	}
	transfers := calculator.Simplify(net)

	names := make(map[string]string, len(trip.Members))
	for _, m := range trip.Members {
		names[m.ID] = m.Name
	}
	nameOf := func(id string) string {
		if name, ok := names[id]; ok && name != "" {
			return name
		}
		return id
	}

	summary := &models.Summary{
		TripID:    trip.ID,
		Currency:  trip.Currency,
		Balances:  make([]models.Balance, len(positions)),
		Transfers: make([]models.Transfer, len(transfers)),
	}
	for i, p := range positions {
		summary.Balances[i] = models.Balance{
			MemberID: p.MemberID,
			Name:     nameOf(p.MemberID),
			Paid:     p.Paid,
			Owed:     p.Owed,
			Net:      p.Net,
		}
	}
	for i, tr := range transfers {
		tr.FromName = nameOf(tr.FromID)
		tr.ToName = nameOf(tr.ToID)
		summary.Transfers[i] = tr
	}

	slog.Debug("Summary computed",
		"trip_id", tripID,
		"expenses", len(snap.Expenses),
		"settlements", len(snap.Settlements),
		"transfers", len(transfers),
	)
	return summary, nil
}

// prepare validates the input against the trip and computes the splits.
func (s *Service) prepare(trip *models.Trip, in ExpenseInput) ([]models.Split, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "title is required")
	}

	known := memberSet(trip.Members)
	if !known[in.PayerID] {
		return nil, apperr.New(apperr.KindMemberNotFound, "payer %q is not on trip %s", in.PayerID, trip.ID)
	}
	for _, p := range in.Participants {
		if p.MemberID != "" && !known[p.MemberID] {
			return nil, apperr.New(apperr.KindMemberNotFound, "participant %q is not on trip %s", p.MemberID, trip.ID)
		}
	}

	return calculator.ComputeSplits(in.Amount, in.SplitType, in.Participants)
}

func newExpense(id string, trip *models.Trip, in ExpenseInput, splits []models.Split, createdAt, updatedAt int64) *models.Expense {
	for i := range splits {
		splits[i].ExpenseID = id
	}
	return &models.Expense{
		ID:        id,
		TripID:    trip.ID,
		Title:     strings.TrimSpace(in.Title),
		Amount:    in.Amount,
		Currency:  trip.Currency,
		PayerID:   in.PayerID,
		SplitType: in.SplitType,
		Splits:    splits,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func memberSet(members []models.Member) map[string]bool {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m.ID] = true
	}
	return set
}

type discard struct{}

func (discard) Publish(context.Context, models.Event) {}
