package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/settlement"
	"github.com/mmynk/tripsplit/pkg/api"
)

// Watcher hands out live event feeds for a trip.
type Watcher interface {
	Subscribe(tripID string) (<-chan models.Event, func())
}

// ExpenseService implements the ExpenseService RPC interface on top of the
// settlement engine. Every call is limited to trips the caller belongs to.
type ExpenseService struct {
	ledger  *settlement.Service
	trips   tripGetter
	watcher Watcher
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(ledger *settlement.Service, trips settlement.MemberRegistry, watcher Watcher) *ExpenseService {
	return &ExpenseService{ledger: ledger, trips: trips, watcher: watcher}
}

// CreateExpense records an expense and its splits.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	in, err := expenseInput(req.Msg.TripID, req.Msg.Title, req.Msg.Amount, req.Msg.PayerID, req.Msg.SplitType, req.Msg.Participants, req.Msg.Notes)
	if err != nil {
		return nil, toConnectError(err)
	}

	expense, err := s.ledger.CreateExpense(ctx, in)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// UpdateExpense replaces an expense in full.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	existing, err := s.memberExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}

	in, err := expenseInput(existing.TripID, req.Msg.Title, req.Msg.Amount, req.Msg.PayerID, req.Msg.SplitType, req.Msg.Participants, req.Msg.Notes)
	if err != nil {
		return nil, toConnectError(err)
	}

	expense, err := s.ledger.UpdateExpense(ctx, existing.ID, in)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if _, err := s.memberExpense(ctx, req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ledger.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetExpense returns one expense.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.memberExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns a trip's expenses in the order they were recorded.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.ledger.ListExpenses(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Expense, len(expenses))
	for i := range expenses {
		out[i] = *toAPIExpense(&expenses[i])
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// RecordSettlement records a repayment between two members.
func (s *ExpenseService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	amount, err := parseMoney("amount", req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	recorded, err := s.ledger.RecordSettlement(ctx, settlement.SettlementInput{
		TripID:    req.Msg.TripID,
		FromID:    req.Msg.FromID,
		ToID:      req.Msg.ToID,
		Amount:    amount,
		Note:      req.Msg.Note,
		CreatedBy: middleware.GetUserID(ctx),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(recorded)}), nil
}

// DeleteSettlement removes a recorded repayment.
func (s *ExpenseService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	existing, err := s.ledger.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := memberTrip(ctx, s.trips, existing.TripID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ledger.DeleteSettlement(ctx, existing.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// ListSettlements returns a trip's recorded repayments, oldest first.
func (s *ExpenseService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	settlements, err := s.ledger.ListSettlements(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Settlement, len(settlements))
	for i := range settlements {
		out[i] = *toAPISettlement(&settlements[i])
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// GetSettlementSummary returns every member's balance and the transfers that settle
// the trip.
func (s *ExpenseService) GetSettlementSummary(ctx context.Context, req *connect.Request[api.GetSettlementSummaryRequest]) (*connect.Response[api.GetSettlementSummaryResponse], error) {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return nil, toConnectError(err)
	}

	summary, err := s.ledger.GetSettlementSummary(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetSettlementSummaryResponse{Summary: toAPISummary(summary)}), nil
}

// WatchTrip streams the trip's ledger changes until the client goes away.
func (s *ExpenseService) WatchTrip(ctx context.Context, req *connect.Request[api.WatchTripRequest], stream *connect.ServerStream[api.TripEvent]) error {
	if _, err := memberTrip(ctx, s.trips, req.Msg.TripID); err != nil {
		return toConnectError(err)
	}

	events, cancel := s.watcher.Subscribe(req.Msg.TripID)
	defer cancel()

	userID := middleware.GetUserID(ctx)
	slog.Info("Watching trip", "trip_id", req.Msg.TripID, "user_id", userID)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopped watching trip", "trip_id", req.Msg.TripID, "user_id", userID)
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(toAPIEvent(event)); err != nil {
				return err
			}
		}
	}
}

// memberExpense loads an expense whose trip the caller belongs to.
func (s *ExpenseService) memberExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.ledger.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := memberTrip(ctx, s.trips, expense.TripID); err != nil {
		return nil, err
	}
	return expense, nil
}

func expenseInput(tripID, title, amount, payerID, splitType string, participants []api.Participant, notes string) (settlement.ExpenseInput, error) {
	parsed, err := parseMoney("amount", amount)
	if err != nil {
		return settlement.ExpenseInput{}, err
	}
	st := models.SplitType(splitType)
	parts, err := toParticipants(st, participants)
	if err != nil {
		return settlement.ExpenseInput{}, err
	}
	if payerID == "" {
		return settlement.ExpenseInput{}, apperr.New(apperr.KindInvalidInput, "payer is required")
	}
	return settlement.ExpenseInput{
		TripID:       tripID,
		Title:        title,
		Amount:       parsed,
		PayerID:      payerID,
		SplitType:    st,
		Participants: parts,
		Notes:        notes,
	}, nil
}
