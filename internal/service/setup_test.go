package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/events"
	"github.com/mmynk/tripsplit/internal/itinerary"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/settlement"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

type testEnv struct {
	auth      apiconnect.AuthServiceClient
	trips     apiconnect.TripServiceClient
	expenses  apiconnect.ExpenseServiceClient
	itinerary apiconnect.ItineraryServiceClient
	hub       *events.Hub
}

// setupTestServer serves every service over httptest with the production interceptors.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	hub := events.NewHub(8, nil)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	interceptors := connect.WithInterceptors(
		middleware.NewLoggingInterceptor(nil),
		middleware.NewAuthInterceptor(jwtManager, apiconnect.PublicProcedures),
	)
	ledger := settlement.NewService(store, store, hub)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.Default()), interceptors))
	mux.Handle(apiconnect.NewTripServiceHandler(NewTripService(store, "INR"), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(ledger, store, hub), interceptors))
	mux.Handle(apiconnect.NewItineraryServiceHandler(
		NewItineraryService(itinerary.NewService(store, store, hub), store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		auth:      apiconnect.NewAuthServiceClient(server.Client(), server.URL),
		trips:     apiconnect.NewTripServiceClient(server.Client(), server.URL),
		expenses:  apiconnect.NewExpenseServiceClient(server.Client(), server.URL),
		itinerary: apiconnect.NewItineraryServiceClient(server.Client(), server.URL),
		hub:       hub,
	}
}

type session struct {
	userID  string
	token   string
	refresh string
}

func (e *testEnv) register(t *testing.T, email, name string) session {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: name,
		Password:    "password123",
	}))
	require.NoError(t, err, "Register failed")
	return session{userID: resp.Msg.User.ID, token: resp.Msg.Token, refresh: resp.Msg.RefreshToken}
}

// tripWith creates a trip owned by the first session and has the rest join it.
func (e *testEnv) tripWith(t *testing.T, owner session, others ...session) *api.Trip {
	t.Helper()
	ctx := context.Background()
	created, err := e.trips.CreateTrip(ctx, authed(owner, &api.CreateTripRequest{Name: "Goa"}))
	require.NoError(t, err, "CreateTrip failed")

	trip := created.Msg.Trip
	for _, s := range others {
		joined, err := e.trips.JoinTrip(ctx, authed(s, &api.JoinTripRequest{InviteCode: trip.InviteCode}))
		require.NoError(t, err, "JoinTrip failed")
		trip = joined.Msg.Trip
	}
	return trip
}

func authed[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

func requireCode(t *testing.T, err error, code connect.Code) *connect.Error {
	t.Helper()
	require.Error(t, err)
	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr), "expected a connect error, got %v", err)
	require.Equal(t, code, connectErr.Code(), connectErr.Message())
	return connectErr
}
