// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package api exposes the planning engine over HTTP: plan, recommend,
// availability, review, and region search endpoints plus health probes
// and Prometheus metrics.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agoraplan/agora/internal/config"
	"github.com/agoraplan/agora/internal/middleware"
)

const (
	defaultRateLimitReqs   = 100
	defaultRateLimitWindow = time.Minute
)

// NewRouter builds the HTTP routing tree. Rate limiting, security headers,
// and request metrics apply to the API group only; the metrics endpoint
// stays outside so scrapes are never throttled.
func NewRouter(cfg *config.ServerConfig, h *Handler) chi.Router {
	reqs := cfg.RateLimitReqs
	if reqs <= 0 {
		reqs = defaultRateLimitReqs
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = defaultRateLimitWindow
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(reqs, window))
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Post("/plan", h.Plan)
		r.Post("/recommend", h.Recommend)
		r.Post("/availability", h.Availability)
		r.Post("/reviews", h.Review)
		r.Get("/regions/search", h.RegionSearch)
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}
