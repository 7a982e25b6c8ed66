package main

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/events"
	"github.com/mmynk/tripsplit/internal/itinerary"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/settlement"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

type routerDeps struct {
	store           storage.Store
	ledger          *settlement.Service
	plans           *itinerary.Service
	hub             *events.Hub
	jwtManager      *auth.JWTManager
	metrics         *metrics.Metrics
	registry        *prometheus.Registry
	defaultCurrency string
}

// newRouter mounts the Connect services next to health and metrics endpoints.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	interceptors := connect.WithInterceptors(
		middleware.NewLoggingInterceptor(d.metrics),
		middleware.NewAuthInterceptor(d.jwtManager, apiconnect.PublicProcedures),
	)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(d.store), d.store, d.jwtManager, slog.Default())
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc, interceptors)
	r.Handle(authPath+"*", authHandler)

	tripPath, tripHandler := apiconnect.NewTripServiceHandler(service.NewTripService(d.store, d.defaultCurrency), interceptors)
	r.Handle(tripPath+"*", tripHandler)

	expensePath, expenseHandler := apiconnect.NewExpenseServiceHandler(service.NewExpenseService(d.ledger, d.store, d.hub), interceptors)
	r.Handle(expensePath+"*", expenseHandler)

	itineraryPath, itineraryHandler := apiconnect.NewItineraryServiceHandler(service.NewItineraryService(d.plans, d.store), interceptors)
	r.Handle(itineraryPath+"*", itineraryHandler)

	return r
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Error-Kind")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
