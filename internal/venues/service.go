// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package venues

import (
	"context"

	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// boxDegrees bounds the store's region query, roughly 2 km around the
// region center.
const boxDegrees = 0.02

// minStoreHits is the backfill threshold: fewer persisted venues than this
// triggers a provider search.
const minStoreHits = 5

// Store persists venue records and serves region-box queries.
type Store interface {
	// VenuesNear returns persisted venues inside the box around center.
	VenuesNear(ctx context.Context, center models.Location, box float64) ([]models.Venue, error)

	// SaveVenues persists provider results, deduplicating by name within
	// about 50 meters.
	SaveVenues(ctx context.Context, venues []models.Venue) error
}

// Service answers venue retrieval for a region, combining the persisted
// store with on-demand provider backfill. Provider failures degrade to
// store-only results; they never fail the request.
type Service struct {
	store    Store
	provider Provider
}

// NewService builds a venue service. provider may be nil, in which case
// only persisted venues are served.
func NewService(store Store, provider Provider) *Service {
	return &Service{store: store, provider: provider}
}

// Search returns venue candidates for a region and purpose. The persisted
// store answers first; when it is too thin, the provider backfills and the
// new records are persisted for the next request.
func (s *Service) Search(ctx context.Context, purpose models.Purpose, userTags []string, regionName string, center models.Location) ([]models.Venue, error) {
	pool, err := s.store.VenuesNear(ctx, center, boxDegrees)
	if err != nil {
		return nil, err
	}
	metrics.VenueSearchesTotal.WithLabelValues("store").Inc()

	if len(pool) >= minStoreHits || s.provider == nil {
		return pool, nil
	}

	queries := ExpandKeywords(purpose, userTags, regionName)
	fetched, err := s.provider.Search(ctx, queries, "", center)
	if err != nil {
		if ctx.Err() != nil {
			return pool, ctx.Err()
		}
		logging.Warn().Err(err).Str("region", regionName).Msg("Venue provider search failed, serving store results only")
		return pool, nil
	}
	metrics.VenueSearchesTotal.WithLabelValues("provider").Inc()

	if len(fetched) > 0 {
		if err := s.store.SaveVenues(ctx, fetched); err != nil {
			logging.Warn().Err(err).Msg("Failed to persist provider venues")
		}
	}

	existing := make(map[string]struct{}, len(pool))
	for _, v := range pool {
		existing[v.Name] = struct{}{}
	}
	for _, v := range fetched {
		if _, dup := existing[v.Name]; !dup {
			pool = append(pool, v)
		}
	}
	return pool, nil
}
