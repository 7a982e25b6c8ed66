package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// TripService implements the TripService RPC interface.
type TripService struct {
	store           storage.TripStore
	defaultCurrency string
}

// NewTripService creates a TripService. Trips created without a currency get
// defaultCurrency.
func NewTripService(store storage.TripStore, defaultCurrency string) *TripService {
	if defaultCurrency == "" {
		defaultCurrency = models.DefaultCurrency
	}
	return &TripService{store: store, defaultCurrency: defaultCurrency}
}

// CreateTrip creates a trip owned by the caller.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(apperr.New(apperr.KindInvalidInput, "trip name is required"))
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Msg.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if !currencyCode.MatchString(currency) {
		return nil, toConnectError(apperr.New(apperr.KindInvalidInput, "currency %q is not a three-letter code", req.Msg.Currency))
	}

	if req.Msg.StartDate < 0 || req.Msg.EndDate < 0 {
		return nil, toConnectError(apperr.New(apperr.KindInvalidInput, "trip dates cannot be negative"))
	}
	if req.Msg.StartDate != 0 && req.Msg.EndDate != 0 && req.Msg.EndDate < req.Msg.StartDate {
		return nil, toConnectError(apperr.New(apperr.KindInvalidInput, "trip ends before it starts"))
	}

	trip := &models.Trip{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		Destination: strings.TrimSpace(req.Msg.Destination),
		StartDate:   req.Msg.StartDate,
		EndDate:     req.Msg.EndDate,
		Currency:    currency,
		OwnerID:     userID,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "owner_id", userID, "currency", trip.Currency)
	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip)}), nil
}

// JoinTrip adds the caller to the trip with the invite code. Joining twice is a no-op.
func (s *TripService) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	trip, err := s.store.GetTripByInviteCode(ctx, req.Msg.InviteCode)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.AddTripMember(ctx, trip.ID, userID); err != nil {
		slog.Error("JoinTrip failed", "trip_id", trip.ID, "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	trip, err = s.store.GetTrip(ctx, trip.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Trip joined", "trip_id", trip.ID, "user_id", userID, "members", len(trip.Members))
	return connect.NewResponse(&api.JoinTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTrip returns a trip the caller belongs to.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	trip, err := memberTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(trip)}), nil
}

// ListTrips returns every trip the caller belongs to, newest first.
func (s *TripService) ListTrips(ctx context.Context, _ *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	trips, err := s.store.ListTripsForUser(ctx, userID)
	if err != nil {
		slog.Error("ListTrips failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Trip, len(trips))
	for i := range trips {
		out[i] = *toAPITrip(&trips[i])
	}
	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

type tripGetter interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
}

// memberTrip loads the trip and checks that the caller is on it.
func memberTrip(ctx context.Context, trips tripGetter, tripID string) (*models.Trip, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	trip, err := trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.HasMember(userID) {
		slog.Warn("Non-member access", "trip_id", tripID, "user_id", userID)
		return nil, apperr.New(apperr.KindUnauthorized, "not a member of trip %s", tripID)
	}
	return trip, nil
}
