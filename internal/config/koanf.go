// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority
// order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/agora/config.yaml",
	"/etc/agora/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "AGORA_CONFIG_PATH"

// envPrefix namespaces Agora environment variables:
// AGORA_SERVER_PORT -> server.port.
const envPrefix = "AGORA_"

// sliceConfigPaths lists config paths holding string slices that may arrive
// as comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// defaultConfig returns a Config with all defaults applied. Defaults load
// first, then the config file and environment variables override them.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8089,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:      "/data/agora.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = runtime.NumCPU()
			SeedData:  false,

			DedupeRadiusM: 50,
		},
		Stores: StoresConfig{
			Path:       "/data/stores",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
		},
		Routing: RoutingConfig{
			URL:                "",
			APIKey:             "",
			Timeout:            5 * time.Second,
			CacheTTL:           0, // travel times between fixed points do not go stale
			RatePerSecond:      10,
			RateBurst:          20,
			BreakerMaxRequests: 3,
			BreakerInterval:    60 * time.Second,
			BreakerTimeout:     30 * time.Second,
			BreakerMinRequests: 5,
			BreakerFailureRate: 0.6,
		},
		Venues: VenuesConfig{
			ProviderURL:   "",
			ClientID:      "",
			ClientSecret:  "",
			Timeout:       5 * time.Second,
			SearchLimit:   25,
			RatePerSecond: 5,
			RateBurst:     10,
		},
		Midpoint: MidpointConfig{
			CandidateCount:    7,
			FanoutConcurrency: 8,
			EquityWeight:      2.0,
		},
		Schedule: ScheduleConfig{
			DayStartHour:    9,
			DayEndHour:      22,
			SlotMinutes:     30,
			DefaultDuration: 2 * time.Hour,
			TopSlots:        3,
		},
		Recommend: RecommendConfig{
			Strategy:      "vector",
			TopN:          10,
			MinCandidates: 3,
			HistoryTopN:   5,
		},
	}
}

// Load builds the configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. AGORA_* environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps AGORA_SECTION_SOME_KEY to section.some_key. The
// first underscore separates the section; the rest stays joined so keys
// like rate_limit_reqs survive.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

// processSliceFields splits comma-separated env values into string slices
// for the paths in sliceConfigPaths. YAML-sourced slices pass through.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
