package main

import (
	"context"
	"net/http"
	"sync/atomic"

	application "deliveryhub/internal/app"
	"deliveryhub/internal/handlers/rest/deliveries_available_get"
	"deliveryhub/internal/handlers/rest/deliveries_history_get"
	"deliveryhub/internal/handlers/rest/delivery_accept_post"
	"deliveryhub/internal/handlers/rest/delivery_create_post"
	"deliveryhub/internal/handlers/rest/delivery_delete"
	"deliveryhub/internal/handlers/rest/delivery_get"
	"deliveryhub/internal/handlers/rest/delivery_status_patch"
	"deliveryhub/internal/handlers/rest/delivery_transporter_status_patch"
	"deliveryhub/internal/handlers/rest/healthcheck_head"
	"deliveryhub/internal/handlers/rest/ping_get"
	"deliveryhub/internal/pkg/config"
	"deliveryhub/internal/pkg/middlewares/auth"
	"deliveryhub/internal/pkg/middlewares/graceful_shutdown"
	"deliveryhub/internal/pkg/middlewares/metrics"
	"deliveryhub/internal/pkg/middlewares/rate_limiter"
	"deliveryhub/internal/pkg/middlewares/timeout"
	"deliveryhub/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	store healthcheck_head.Pinger,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, app.RateLimiter))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, store)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	requireAuth := auth.Middleware(log, app.Verifier)
	deliveries := router.PathPrefix("/deliveries").Subrouter()

	// статические пути регистрируются раньше /{id}
	var available http.Handler = deliveries_available_get.New(log, app.ServiceDelivery)
	if cfg.Delivery.AvailableRequiresAuth {
		available = requireAuth(available)
	}
	deliveries.Handle("/transporter/available", available).Methods(http.MethodGet)

	deliveries.Handle("/create", requireAuth(delivery_create_post.New(log, app.ServiceDelivery))).Methods(http.MethodPost)
	deliveries.Handle("/history", requireAuth(deliveries_history_get.New(log, app.ServiceDelivery))).Methods(http.MethodGet)

	deliveries.Handle("/{id}", requireAuth(delivery_get.New(log, app.ServiceDelivery))).Methods(http.MethodGet)
	deliveries.Handle("/{id}", requireAuth(delivery_delete.New(log, app.ServiceDelivery))).Methods(http.MethodDelete)
	deliveries.Handle("/{id}/status", requireAuth(delivery_status_patch.New(log, app.ServiceDelivery))).Methods(http.MethodPatch)
	deliveries.Handle("/{id}/accept", requireAuth(delivery_accept_post.New(log, app.ServiceDelivery))).Methods(http.MethodPost)
	deliveries.Handle("/{id}/transporter-status", requireAuth(delivery_transporter_status_patch.New(log, app.ServiceDelivery))).Methods(http.MethodPatch)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nil)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
