// Package apiconnect wires the tripsplit.v1 services to Connect handlers and clients.
// Every handler and client speaks JSON through api.Codec.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

const (
	AuthServiceName      = "tripsplit.v1.AuthService"
	TripServiceName      = "tripsplit.v1.TripService"
	ExpenseServiceName   = "tripsplit.v1.ExpenseService"
	ItineraryServiceName = "tripsplit.v1.ItineraryService"
)

// Fully-qualified procedure names, usable as HTTP paths.
const (
	AuthServiceRegisterProcedure       = "/tripsplit.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/tripsplit.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/tripsplit.v1.AuthService/GetCurrentUser"
	AuthServiceRefreshTokenProcedure   = "/tripsplit.v1.AuthService/RefreshToken"

	TripServiceCreateTripProcedure = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceJoinTripProcedure   = "/tripsplit.v1.TripService/JoinTrip"
	TripServiceGetTripProcedure    = "/tripsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure  = "/tripsplit.v1.TripService/ListTrips"

	ExpenseServiceCreateExpenseProcedure        = "/tripsplit.v1.ExpenseService/CreateExpense"
	ExpenseServiceUpdateExpenseProcedure        = "/tripsplit.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure        = "/tripsplit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceGetExpenseProcedure           = "/tripsplit.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure         = "/tripsplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceRecordSettlementProcedure     = "/tripsplit.v1.ExpenseService/RecordSettlement"
	ExpenseServiceDeleteSettlementProcedure     = "/tripsplit.v1.ExpenseService/DeleteSettlement"
	ExpenseServiceListSettlementsProcedure      = "/tripsplit.v1.ExpenseService/ListSettlements"
	ExpenseServiceGetSettlementSummaryProcedure = "/tripsplit.v1.ExpenseService/GetSettlementSummary"
	ExpenseServiceWatchTripProcedure            = "/tripsplit.v1.ExpenseService/WatchTrip"

	ItineraryServiceAddItineraryItemProcedure    = "/tripsplit.v1.ItineraryService/AddItineraryItem"
	ItineraryServiceUpdateItineraryItemProcedure = "/tripsplit.v1.ItineraryService/UpdateItineraryItem"
	ItineraryServiceDeleteItineraryItemProcedure = "/tripsplit.v1.ItineraryService/DeleteItineraryItem"
	ItineraryServiceListItineraryProcedure       = "/tripsplit.v1.ItineraryService/ListItinerary"
)

// PublicProcedures need no bearer token.
var PublicProcedures = map[string]bool{
	AuthServiceRegisterProcedure:     true,
	AuthServiceLoginProcedure:        true,
	AuthServiceRefreshTokenProcedure: true,
}

func clientOptions(opts []connect.ClientOption, extra ...connect.ClientOption) []connect.ClientOption {
	out := make([]connect.ClientOption, 0, len(opts)+len(extra)+1)
	out = append(out, connect.WithCodec(api.Codec{}))
	out = append(out, opts...)
	return append(out, extra...)
}

func handlerOptions(opts []connect.HandlerOption, extra ...connect.HandlerOption) []connect.HandlerOption {
	out := make([]connect.HandlerOption, 0, len(opts)+len(extra)+1)
	out = append(out, connect.WithCodec(api.Codec{}))
	out = append(out, opts...)
	return append(out, extra...)
}

func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// AuthServiceClient is a client for tripsplit.v1.AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	RefreshToken(context.Context, *connect.Request[api.RefreshTokenRequest]) (*connect.Response[api.RefreshTokenResponse], error)
}

// NewAuthServiceClient builds a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &authServiceClient{
		register: connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, clientOptions(opts)...),
		login:    connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, clientOptions(opts)...),
		currentUser: connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure,
			clientOptions(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
		refresh: connect.NewClient[api.RefreshTokenRequest, api.RefreshTokenResponse](httpClient, baseURL+AuthServiceRefreshTokenProcedure, clientOptions(opts)...),
	}
}

type authServiceClient struct {
	register    *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login       *connect.Client[api.LoginRequest, api.LoginResponse]
	currentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
	refresh     *connect.Client[api.RefreshTokenRequest, api.RefreshTokenResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.currentUser.CallUnary(ctx, req)
}

func (c *authServiceClient) RefreshToken(ctx context.Context, req *connect.Request[api.RefreshTokenRequest]) (*connect.Response[api.RefreshTokenResponse], error) {
	return c.refresh.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the server.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	RefreshToken(context.Context, *connect.Request[api.RefreshTokenRequest]) (*connect.Response[api.RefreshTokenResponse], error)
}

// NewAuthServiceHandler returns the mount path and handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceRegisterProcedure: connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, handlerOptions(opts)...),
		AuthServiceLoginProcedure:    connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, handlerOptions(opts)...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser,
			handlerOptions(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
		AuthServiceRefreshTokenProcedure: connect.NewUnaryHandler(AuthServiceRefreshTokenProcedure, svc.RefreshToken, handlerOptions(opts)...),
	})
}

// TripServiceClient is a client for tripsplit.v1.TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
}

// NewTripServiceClient builds a client for the service at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &tripServiceClient{
		createTrip: connect.NewClient[api.CreateTripRequest, api.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, clientOptions(opts)...),
		joinTrip:   connect.NewClient[api.JoinTripRequest, api.JoinTripResponse](httpClient, baseURL+TripServiceJoinTripProcedure, clientOptions(opts)...),
		getTrip: connect.NewClient[api.GetTripRequest, api.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure,
			clientOptions(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
		listTrips: connect.NewClient[api.ListTripsRequest, api.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure,
			clientOptions(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...),
	}
}

type tripServiceClient struct {
	createTrip *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	joinTrip   *connect.Client[api.JoinTripRequest, api.JoinTripResponse]
	getTrip    *connect.Client[api.GetTripRequest, api.GetTripResponse]
	listTrips  *connect.Client[api.ListTripsRequest, api.ListTripsResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	return c.joinTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

// TripServiceHandler is implemented by the server.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
}

// NewTripServiceHandler returns the mount path and handler for svc.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	readOnly := connect.WithIdempotency(connect.IdempotencyNoSideEffects)
	return "/" + TripServiceName + "/", route(map[string]http.Handler{
		TripServiceCreateTripProcedure: connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, handlerOptions(opts)...),
		TripServiceJoinTripProcedure:   connect.NewUnaryHandler(TripServiceJoinTripProcedure, svc.JoinTrip, handlerOptions(opts)...),
		TripServiceGetTripProcedure:    connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, handlerOptions(opts, readOnly)...),
		TripServiceListTripsProcedure:  connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, handlerOptions(opts, readOnly)...),
	})
}

// ExpenseServiceClient is a client for tripsplit.v1.ExpenseService.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	GetSettlementSummary(context.Context, *connect.Request[api.GetSettlementSummaryRequest]) (*connect.Response[api.GetSettlementSummaryResponse], error)
	WatchTrip(context.Context, *connect.Request[api.WatchTripRequest]) (*connect.ServerStreamForClient[api.TripEvent], error)
}

// NewExpenseServiceClient builds a client for the service at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	readOnly := connect.WithIdempotency(connect.IdempotencyNoSideEffects)
	return &expenseServiceClient{
		createExpense:    connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, clientOptions(opts)...),
		updateExpense:    connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, clientOptions(opts)...),
		deleteExpense:    connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, clientOptions(opts)...),
		getExpense:       connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, clientOptions(opts, readOnly)...),
		listExpenses:     connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, clientOptions(opts, readOnly)...),
		recordSettlement: connect.NewClient[api.RecordSettlementRequest, api.RecordSettlementResponse](httpClient, baseURL+ExpenseServiceRecordSettlementProcedure, clientOptions(opts)...),
		deleteSettlement: connect.NewClient[api.DeleteSettlementRequest, api.DeleteSettlementResponse](httpClient, baseURL+ExpenseServiceDeleteSettlementProcedure, clientOptions(opts)...),
		listSettlements:  connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+ExpenseServiceListSettlementsProcedure, clientOptions(opts, readOnly)...),
		getSummary:       connect.NewClient[api.GetSettlementSummaryRequest, api.GetSettlementSummaryResponse](httpClient, baseURL+ExpenseServiceGetSettlementSummaryProcedure, clientOptions(opts, readOnly)...),
		watchTrip:        connect.NewClient[api.WatchTripRequest, api.TripEvent](httpClient, baseURL+ExpenseServiceWatchTripProcedure, clientOptions(opts)...),
	}
}

type expenseServiceClient struct {
	createExpense    *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	updateExpense    *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense    *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	getExpense       *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses     *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	recordSettlement *connect.Client[api.RecordSettlementRequest, api.RecordSettlementResponse]
	deleteSettlement *connect.Client[api.DeleteSettlementRequest, api.DeleteSettlementResponse]
	listSettlements  *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
	getSummary       *connect.Client[api.GetSettlementSummaryRequest, api.GetSettlementSummaryResponse]
	watchTrip        *connect.Client[api.WatchTripRequest, api.TripEvent]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetSettlementSummary(ctx context.Context, req *connect.Request[api.GetSettlementSummaryRequest]) (*connect.Response[api.GetSettlementSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *expenseServiceClient) WatchTrip(ctx context.Context, req *connect.Request[api.WatchTripRequest]) (*connect.ServerStreamForClient[api.TripEvent], error) {
	return c.watchTrip.CallServerStream(ctx, req)
}

// ExpenseServiceHandler is implemented by the server.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	GetSettlementSummary(context.Context, *connect.Request[api.GetSettlementSummaryRequest]) (*connect.Response[api.GetSettlementSummaryResponse], error)
	WatchTrip(context.Context, *connect.Request[api.WatchTripRequest], *connect.ServerStream[api.TripEvent]) error
}

// NewExpenseServiceHandler returns the mount path and handler for svc.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	readOnly := connect.WithIdempotency(connect.IdempotencyNoSideEffects)
	return "/" + ExpenseServiceName + "/", route(map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, handlerOptions(opts)...),
		ExpenseServiceUpdateExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, handlerOptions(opts)...),
		ExpenseServiceDeleteExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, handlerOptions(opts)...),
		ExpenseServiceGetExpenseProcedure:           connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, handlerOptions(opts, readOnly)...),
		ExpenseServiceListExpensesProcedure:         connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, handlerOptions(opts, readOnly)...),
		ExpenseServiceRecordSettlementProcedure:     connect.NewUnaryHandler(ExpenseServiceRecordSettlementProcedure, svc.RecordSettlement, handlerOptions(opts)...),
		ExpenseServiceDeleteSettlementProcedure:     connect.NewUnaryHandler(ExpenseServiceDeleteSettlementProcedure, svc.DeleteSettlement, handlerOptions(opts)...),
		ExpenseServiceListSettlementsProcedure:      connect.NewUnaryHandler(ExpenseServiceListSettlementsProcedure, svc.ListSettlements, handlerOptions(opts, readOnly)...),
		ExpenseServiceGetSettlementSummaryProcedure: connect.NewUnaryHandler(ExpenseServiceGetSettlementSummaryProcedure, svc.GetSettlementSummary, handlerOptions(opts, readOnly)...),
		ExpenseServiceWatchTripProcedure:            connect.NewServerStreamHandler(ExpenseServiceWatchTripProcedure, svc.WatchTrip, handlerOptions(opts)...),
	})
}

// ItineraryServiceClient is a client for tripsplit.v1.ItineraryService.
type ItineraryServiceClient interface {
	AddItineraryItem(context.Context, *connect.Request[api.AddItineraryItemRequest]) (*connect.Response[api.AddItineraryItemResponse], error)
	UpdateItineraryItem(context.Context, *connect.Request[api.UpdateItineraryItemRequest]) (*connect.Response[api.UpdateItineraryItemResponse], error)
	DeleteItineraryItem(context.Context, *connect.Request[api.DeleteItineraryItemRequest]) (*connect.Response[api.DeleteItineraryItemResponse], error)
	ListItinerary(context.Context, *connect.Request[api.ListItineraryRequest]) (*connect.Response[api.ListItineraryResponse], error)
}

// NewItineraryServiceClient builds a client for the service at baseURL.
func NewItineraryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ItineraryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	readOnly := connect.WithIdempotency(connect.IdempotencyNoSideEffects)
	return &itineraryServiceClient{
		addItem:    connect.NewClient[api.AddItineraryItemRequest, api.AddItineraryItemResponse](httpClient, baseURL+ItineraryServiceAddItineraryItemProcedure, clientOptions(opts)...),
		updateItem: connect.NewClient[api.UpdateItineraryItemRequest, api.UpdateItineraryItemResponse](httpClient, baseURL+ItineraryServiceUpdateItineraryItemProcedure, clientOptions(opts)...),
		deleteItem: connect.NewClient[api.DeleteItineraryItemRequest, api.DeleteItineraryItemResponse](httpClient, baseURL+ItineraryServiceDeleteItineraryItemProcedure, clientOptions(opts)...),
		list:       connect.NewClient[api.ListItineraryRequest, api.ListItineraryResponse](httpClient, baseURL+ItineraryServiceListItineraryProcedure, clientOptions(opts, readOnly)...),
	}
}

type itineraryServiceClient struct {
	addItem    *connect.Client[api.AddItineraryItemRequest, api.AddItineraryItemResponse]
	updateItem *connect.Client[api.UpdateItineraryItemRequest, api.UpdateItineraryItemResponse]
	deleteItem *connect.Client[api.DeleteItineraryItemRequest, api.DeleteItineraryItemResponse]
	list       *connect.Client[api.ListItineraryRequest, api.ListItineraryResponse]
}

func (c *itineraryServiceClient) AddItineraryItem(ctx context.Context, req *connect.Request[api.AddItineraryItemRequest]) (*connect.Response[api.AddItineraryItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) UpdateItineraryItem(ctx context.Context, req *connect.Request[api.UpdateItineraryItemRequest]) (*connect.Response[api.UpdateItineraryItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) DeleteItineraryItem(ctx context.Context, req *connect.Request[api.DeleteItineraryItemRequest]) (*connect.Response[api.DeleteItineraryItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) ListItinerary(ctx context.Context, req *connect.Request[api.ListItineraryRequest]) (*connect.Response[api.ListItineraryResponse], error) {
	return c.list.CallUnary(ctx, req)
}

// ItineraryServiceHandler is implemented by the server.
type ItineraryServiceHandler interface {
	AddItineraryItem(context.Context, *connect.Request[api.AddItineraryItemRequest]) (*connect.Response[api.AddItineraryItemResponse], error)
	UpdateItineraryItem(context.Context, *connect.Request[api.UpdateItineraryItemRequest]) (*connect.Response[api.UpdateItineraryItemResponse], error)
	DeleteItineraryItem(context.Context, *connect.Request[api.DeleteItineraryItemRequest]) (*connect.Response[api.DeleteItineraryItemResponse], error)
	ListItinerary(context.Context, *connect.Request[api.ListItineraryRequest]) (*connect.Response[api.ListItineraryResponse], error)
}

// NewItineraryServiceHandler returns the mount path and handler for svc.
func NewItineraryServiceHandler(svc ItineraryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	readOnly := connect.WithIdempotency(connect.IdempotencyNoSideEffects)
	return "/" + ItineraryServiceName + "/", route(map[string]http.Handler{
		ItineraryServiceAddItineraryItemProcedure:    connect.NewUnaryHandler(ItineraryServiceAddItineraryItemProcedure, svc.AddItineraryItem, handlerOptions(opts)...),
		ItineraryServiceUpdateItineraryItemProcedure: connect.NewUnaryHandler(ItineraryServiceUpdateItineraryItemProcedure, svc.UpdateItineraryItem, handlerOptions(opts)...),
		ItineraryServiceDeleteItineraryItemProcedure: connect.NewUnaryHandler(ItineraryServiceDeleteItineraryItemProcedure, svc.DeleteItineraryItem, handlerOptions(opts)...),
		ItineraryServiceListItineraryProcedure:       connect.NewUnaryHandler(ItineraryServiceListItineraryProcedure, svc.ListItinerary, handlerOptions(opts, readOnly)...),
	})
}
