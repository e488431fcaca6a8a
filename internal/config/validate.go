// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values that would make the server
// misbehave at runtime. It returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRouting(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	return c.validateRecommend()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("server.rate_limit_reqs must not be negative, got %d", c.Server.RateLimitReqs)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level must be a valid level, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateRouting() error {
	if c.Routing.URL != "" && c.Routing.Timeout <= 0 {
		return fmt.Errorf("routing.timeout must be positive when a provider is configured, got %s", c.Routing.Timeout)
	}
	if c.Routing.RatePerSecond < 0 {
		return fmt.Errorf("routing.rate_per_second must not be negative, got %f", c.Routing.RatePerSecond)
	}
	if c.Routing.BreakerFailureRate <= 0 || c.Routing.BreakerFailureRate > 1 {
		return fmt.Errorf("routing.breaker_failure_rate must be in (0, 1], got %f", c.Routing.BreakerFailureRate)
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if c.Schedule.DayStartHour < 0 || c.Schedule.DayStartHour > 23 {
		return fmt.Errorf("schedule.day_start_hour must be between 0 and 23, got %d", c.Schedule.DayStartHour)
	}
	if c.Schedule.DayEndHour < 1 || c.Schedule.DayEndHour > 24 {
		return fmt.Errorf("schedule.day_end_hour must be between 1 and 24, got %d", c.Schedule.DayEndHour)
	}
	if c.Schedule.DayEndHour <= c.Schedule.DayStartHour {
		return fmt.Errorf("schedule.day_end_hour (%d) must be after day_start_hour (%d)",
			c.Schedule.DayEndHour, c.Schedule.DayStartHour)
	}
	if c.Schedule.SlotMinutes <= 0 || c.Schedule.SlotMinutes > 60 {
		return fmt.Errorf("schedule.slot_minutes must be between 1 and 60, got %d", c.Schedule.SlotMinutes)
	}
	if c.Schedule.DefaultDuration <= 0 {
		return fmt.Errorf("schedule.default_duration must be positive, got %s", c.Schedule.DefaultDuration)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	switch c.Recommend.Strategy {
	case "vector", "additive":
	default:
		return fmt.Errorf("recommend.strategy must be vector or additive, got %q", c.Recommend.Strategy)
	}
	if c.Recommend.TopN <= 0 {
		return fmt.Errorf("recommend.top_n must be positive, got %d", c.Recommend.TopN)
	}
	if c.Recommend.MinCandidates < 0 {
		return fmt.Errorf("recommend.min_candidates must not be negative, got %d", c.Recommend.MinCandidates)
	}
	return nil
}
