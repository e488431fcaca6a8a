// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package travel

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// BreakerSettings tunes the resilient provider wrapper.
type BreakerSettings struct {
	// MaxRequests allowed through in half-open state.
	MaxRequests uint32

	// Interval resets failure counts while closed.
	Interval time.Duration

	// Timeout before an open breaker goes half-open.
	Timeout time.Duration

	// MinRequests before the failure rate is considered meaningful.
	MinRequests uint32

	// FailureRate at or above which the breaker opens.
	FailureRate float64

	// RatePerSecond and RateBurst bound outbound calls.
	RatePerSecond float64
	RateBurst     int
}

// ResilientProvider wraps a RoutingProvider with a circuit breaker and a
// rate limiter. The breaker keeps a flapping provider from dragging every
// plan computation through its timeout; the limiter keeps us polite.
type ResilientProvider struct {
	inner   RoutingProvider
	cb      *gobreaker.CircuitBreaker[int]
	limiter *rate.Limiter
}

// NewResilientProvider wraps the given provider.
func NewResilientProvider(inner RoutingProvider, settings BreakerSettings) *ResilientProvider {
	metrics.OracleBreakerState.Set(0)

	cb := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        "routing-provider",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Routing provider breaker state change")
			metrics.OracleBreakerState.Set(breakerStateValue(to))
		},
	})

	return &ResilientProvider{
		inner:   inner,
		cb:      cb,
		limiter: rate.NewLimiter(rate.Limit(settings.RatePerSecond), settings.RateBurst),
	}
}

// TransitMinutes implements RoutingProvider. It blocks on the rate limiter
// (respecting ctx), then runs the call through the breaker.
func (p *ResilientProvider) TransitMinutes(ctx context.Context, origin, dest models.Location) (int, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	start := time.Now()
	minutes, err := p.cb.Execute(func() (int, error) {
		return p.inner.TransitMinutes(ctx, origin, dest)
	})
	metrics.OracleProviderDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.OracleProviderErrors.Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Debug().Err(err).Msg("Routing call rejected by breaker")
		}
		return 0, err
	}
	return minutes, nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
