// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package travel

import (
	"context"
	"time"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/stores"
)

// Fallback estimate parameters: city transit averages about 30 km/h, plus a
// flat transfer penalty.
const (
	fallbackMinutesPerKm    = 2
	fallbackTransferPenalty = 15
)

// Oracle answers travel-time queries. Resolution order: durable cache,
// routing provider, distance-derived fallback. Only provider answers are
// cached; fallback estimates are recomputed every time so a later provider
// recovery can replace them.
type Oracle struct {
	provider RoutingProvider
	cache    *stores.TravelCache
	timeout  time.Duration
}

// NewOracle creates an oracle. provider may be nil, in which case every
// cache miss resolves to the fallback estimate.
func NewOracle(provider RoutingProvider, cache *stores.TravelCache, timeout time.Duration) *Oracle {
	return &Oracle{provider: provider, cache: cache, timeout: timeout}
}

// Minutes returns the transit duration from origin to dest. The second
// return value is true when the answer is a distance-derived estimate
// rather than real routing data.
//
// Provider and cache failures never propagate: the oracle always has an
// answer.
func (o *Oracle) Minutes(ctx context.Context, origin, dest models.Location) (int, bool) {
	if entry, found, err := o.cache.Get(ctx, origin, dest); err == nil && found {
		metrics.RecordOracleLookup("cache")
		return entry.Minutes, false
	} else if err != nil {
		logging.Warn().Err(err).Msg("Travel cache read failed")
	}

	if o.provider != nil {
		callCtx := ctx
		if o.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, o.timeout)
			defer cancel()
		}

		minutes, err := o.provider.TransitMinutes(callCtx, origin, dest)
		if err == nil {
			metrics.RecordOracleLookup("provider")
			entry := stores.TravelTimeEntry{Minutes: minutes, Source: "provider"}
			if err := o.cache.Put(ctx, origin, dest, entry); err != nil {
				logging.Warn().Err(err).Msg("Travel cache write failed")
			}
			return minutes, false
		}

		logging.Debug().Err(err).
			Float64("origin_lat", origin.Lat).
			Float64("dest_lat", dest.Lat).
			Msg("Routing provider unavailable, using distance estimate")
	}

	metrics.RecordOracleLookup("fallback")
	return FallbackMinutes(origin, dest), true
}

// FallbackMinutes is the deterministic distance-derived estimate used when
// no real routing data is available.
func FallbackMinutes(origin, dest models.Location) int {
	return int(geo.HaversineKm(origin, dest)*fallbackMinutesPerKm) + fallbackTransferPenalty
}
