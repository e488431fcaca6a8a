// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package config loads and validates Agora configuration from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables, in increasing order of precedence.
package config

import (
	"time"
)

// Config is the root configuration for the Agora server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Stores    StoresConfig    `koanf:"stores"`
	Routing   RoutingConfig   `koanf:"routing"`
	Venues    VenuesConfig    `koanf:"venues"`
	Midpoint  MidpointConfig  `koanf:"midpoint"`
	Schedule  ScheduleConfig  `koanf:"schedule"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	Environment     string        `koanf:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings for the relational store
// (venues, users, meeting history, calendar events).
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count. 0 uses runtime.NumCPU().
	Threads  int  `koanf:"threads"`
	SeedData bool `koanf:"seed_data"`

	// DedupeRadiusM is the distance in meters under which two same-named
	// venues count as one record on save. 0 uses the built-in default.
	DedupeRadiusM float64 `koanf:"dedupe_radius_m"`
}

// StoresConfig holds Badger settings for the durable key-value stores
// (travel-time cache, preference profiles).
type StoresConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RoutingConfig holds settings for the external transit routing provider
// backing the travel-time oracle.
type RoutingConfig struct {
	// URL is the routing provider base URL. Empty disables the provider;
	// the oracle then serves distance-derived estimates only.
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// CacheTTL bounds the lifetime of provider-sourced entries in the
	// travel-time cache. Zero means entries never expire.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RatePerSecond and RateBurst bound outbound provider calls.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`

	// Circuit breaker settings.
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRate float64       `koanf:"breaker_failure_rate"`
}

// VenuesConfig holds settings for venue search.
type VenuesConfig struct {
	// ProviderURL is the external local-search provider base URL. Empty
	// disables the provider; searches then serve from the local store only.
	ProviderURL   string        `koanf:"provider_url"`
	ClientID      string        `koanf:"client_id"`
	ClientSecret  string        `koanf:"client_secret"`
	Timeout       time.Duration `koanf:"timeout"`
	SearchLimit   int           `koanf:"search_limit"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	RateBurst     int           `koanf:"rate_burst"`
}

// MidpointConfig holds settings for meeting-region optimization.
type MidpointConfig struct {
	// CandidateCount is how many centroid-nearest hotspots are evaluated
	// with real travel times.
	CandidateCount int `koanf:"candidate_count"`

	// FanoutConcurrency bounds concurrent oracle lookups during
	// candidate evaluation.
	FanoutConcurrency int `koanf:"fanout_concurrency"`

	// EquityWeight scales the spread penalty in region scoring.
	EquityWeight float64 `koanf:"equity_weight"`

	// HotspotsFile optionally replaces the built-in hub catalogue with a
	// JSON file, for deployments outside the default metropolitan area.
	HotspotsFile string `koanf:"hotspots_file"`
}

// ScheduleConfig holds settings for availability computation.
type ScheduleConfig struct {
	DayStartHour    int           `koanf:"day_start_hour"`
	DayEndHour      int           `koanf:"day_end_hour"`
	SlotMinutes     int           `koanf:"slot_minutes"`
	DefaultDuration time.Duration `koanf:"default_duration"`
	TopSlots        int           `koanf:"top_slots"`
}

// RecommendConfig holds settings for venue recommendation.
type RecommendConfig struct {
	// Strategy selects the scoring strategy: vector or additive.
	Strategy string `koanf:"strategy"`
	TopN     int    `koanf:"top_n"`

	// MinCandidates is the safety-valve floor: when purpose filtering
	// leaves fewer candidates, filtering falls back to the full set.
	MinCandidates int `koanf:"min_candidates"`

	// HistoryTopN bounds how many similar past meetings are surfaced.
	HistoryTopN int `koanf:"history_top_n"`
}
