// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tecnicospaces/spacesd/internal/config"
	"github.com/tecnicospaces/spacesd/internal/middleware"
)

// Router wires the handlers and middleware into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router with middleware derived from the security
// configuration.
func NewRouter(handler *Handler, sec *config.SecurityConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if sec != nil {
		mwConfig.CORSAllowedOrigins = sec.CORSOrigins
		mwConfig.RateLimitRequests = sec.RateLimitReqs
		mwConfig.RateLimitWindow = sec.RateLimitWindow
		mwConfig.RateLimitDisabled = sec.RateLimitDisabled
	}

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes using Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Welcome page.
	r.Get("/", router.handler.Welcome)

	// Health endpoints get permissive rate limiting so monitoring tools
	// can poll frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitForHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Core API endpoints.
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/spaces", router.handler.GetSpaces)
		r.Get("/schedule/{space_id}", router.handler.GetSchedule)
		r.Post("/rebuild", router.handler.TriggerRebuild)
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", promhttp.Handler())

	// JSON 404/405 instead of Chi's plain-text defaults.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	return r
}
