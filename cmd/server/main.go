// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package main is the entry point for the Agora server.
//
// Agora answers the three questions every group meetup raises: where to
// meet, what to do there, and when everyone is free. It optimizes a
// transit-fair midpoint across the participants, searches and scores
// venues around the winning regions against the group's learned tastes,
// and intersects calendars into ranked time slots.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered env and file settings (Koanf v2)
//  2. Stores: Badger key-value store for the travel cache and preference
//     profiles
//  3. Database: DuckDB for venues, users, calendars, and meeting history
//  4. Travel oracle: transit routing provider behind a circuit breaker,
//     with distance-derived fallback estimates
//  5. Venue service: local store backed by an external local-search
//     provider
//  6. Planner: midpoint optimization, venue scoring, scheduling
//  7. HTTP server: REST API under a suture supervisor tree
//
// # Configuration
//
// Configuration is loaded via Koanf with layered sources (highest
// priority wins): environment variables, config file, built-in defaults.
// External providers are optional; without credentials the engine serves
// store-only venue results and distance-derived travel estimates.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the shutdown
// timeout, and closes both stores.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/agoraplan/agora/internal/api"
	"github.com/agoraplan/agora/internal/config"
	"github.com/agoraplan/agora/internal/database"
	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/midpoint"
	"github.com/agoraplan/agora/internal/planner"
	"github.com/agoraplan/agora/internal/recommend"
	"github.com/agoraplan/agora/internal/schedule"
	"github.com/agoraplan/agora/internal/stores"
	"github.com/agoraplan/agora/internal/supervisor"
	"github.com/agoraplan/agora/internal/travel"
	"github.com/agoraplan/agora/internal/venues"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("store_path", cfg.Stores.Path).
		Bool("routing_provider", cfg.Routing.URL != "").
		Bool("venue_provider", cfg.Venues.ProviderURL != "").
		Msg("Starting Agora")

	kv, err := stores.Open(stores.Options{
		Path:     cfg.Stores.Path,
		InMemory: cfg.Stores.InMemory,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open key-value store")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing key-value store")
		}
	}()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	if cfg.Midpoint.HotspotsFile != "" {
		if err := midpoint.LoadCatalogue(cfg.Midpoint.HotspotsFile); err != nil {
			logging.Fatal().Err(err).Msg("Failed to load hotspot catalogue")
		}
		logging.Info().Str("file", cfg.Midpoint.HotspotsFile).Msg("Hotspot catalogue loaded")
	}

	oracle := buildOracle(cfg, kv)
	venueService := buildVenueService(cfg, db)

	rcfg := recommendConfig(cfg)
	strategy, err := recommend.NewStrategy(cfg.Recommend.Strategy, rcfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation strategy")
	}

	scheduler := schedule.New(schedule.Config{
		DayStartHour:    cfg.Schedule.DayStartHour,
		DayEndHour:      cfg.Schedule.DayEndHour,
		SlotMinutes:     cfg.Schedule.SlotMinutes,
		DefaultDuration: cfg.Schedule.DefaultDuration,
		TopSlots:        cfg.Schedule.TopSlots,
	})

	prefs := stores.NewPreferenceStore(kv)

	p := planner.New(planner.Options{
		Optimizer: midpoint.NewOptimizer(oracle, midpointConfig(cfg)),
		Venues:    venueService,
		Users:     db,
		Events:    db,
		Prefs:     prefs,
		Scheduler: scheduler,
		Filter:    recommend.NewFilter(rcfg),
		Strategy:  strategy,
		TopN:      rcfg.TopN,
	})

	handler := api.NewHandler(api.HandlerOptions{
		Planner:   p,
		Scheduler: scheduler,
		Users:     db,
		Events:    db,
		History:   db,
		Prefs:     prefs,
		Matcher:   recommend.NewMatcher(rcfg),
		Ready:     db.Ping,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(&cfg.Server, handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddStoreService(supervisor.NewGCService(kv, cfg.Stores.GCInterval))
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildOracle wires the travel-time oracle. Without a routing URL the
// oracle runs on cached entries and distance-derived fallbacks only.
func buildOracle(cfg *config.Config, kv *badger.DB) *travel.Oracle {
	cache := stores.NewTravelCache(kv, cfg.Routing.CacheTTL)

	if cfg.Routing.URL == "" {
		logging.Info().Msg("Routing provider disabled, oracle serves cache and fallback estimates")
		return travel.NewOracle(nil, cache, cfg.Routing.Timeout)
	}

	provider := travel.NewResilientProvider(
		travel.NewHTTPProvider(cfg.Routing.URL, cfg.Routing.APIKey, cfg.Routing.Timeout),
		travel.BreakerSettings{
			MaxRequests:   cfg.Routing.BreakerMaxRequests,
			Interval:      cfg.Routing.BreakerInterval,
			Timeout:       cfg.Routing.BreakerTimeout,
			MinRequests:   cfg.Routing.BreakerMinRequests,
			FailureRate:   cfg.Routing.BreakerFailureRate,
			RatePerSecond: cfg.Routing.RatePerSecond,
			RateBurst:     cfg.Routing.RateBurst,
		},
	)
	return travel.NewOracle(provider, cache, cfg.Routing.Timeout)
}

// buildVenueService wires venue search. Without provider credentials the
// service answers from the local store only.
func buildVenueService(cfg *config.Config, db *database.DB) *venues.Service {
	if cfg.Venues.ClientID == "" {
		logging.Info().Msg("Venue provider disabled, searches serve from the local store only")
		return venues.NewService(db, nil)
	}

	provider := venues.NewHTTPProvider(venues.HTTPProviderOptions{
		BaseURL:       cfg.Venues.ProviderURL,
		ClientID:      cfg.Venues.ClientID,
		ClientSecret:  cfg.Venues.ClientSecret,
		Timeout:       cfg.Venues.Timeout,
		SearchLimit:   cfg.Venues.SearchLimit,
		RatePerSecond: cfg.Venues.RatePerSecond,
		RateBurst:     cfg.Venues.RateBurst,
	})
	return venues.NewService(db, provider)
}

func recommendConfig(cfg *config.Config) *recommend.Config {
	rcfg := recommend.DefaultConfig()
	if cfg.Recommend.TopN > 0 {
		rcfg.TopN = cfg.Recommend.TopN
	}
	if cfg.Recommend.MinCandidates > 0 {
		rcfg.MinCandidates = cfg.Recommend.MinCandidates
	}
	if cfg.Recommend.HistoryTopN > 0 {
		rcfg.Similarity.TopN = cfg.Recommend.HistoryTopN
	}
	return rcfg
}

func midpointConfig(cfg *config.Config) midpoint.Config {
	mcfg := midpoint.DefaultConfig()
	if cfg.Midpoint.CandidateCount > 0 {
		mcfg.CandidateCount = cfg.Midpoint.CandidateCount
	}
	if cfg.Midpoint.FanoutConcurrency > 0 {
		mcfg.FanoutConcurrency = cfg.Midpoint.FanoutConcurrency
	}
	if cfg.Midpoint.EquityWeight > 0 {
		mcfg.EquityWeight = cfg.Midpoint.EquityWeight
	}
	return mcfg
}
