// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"strings"

	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/models"
)

// Filter narrows a venue pool to purpose-appropriate candidates.
type Filter struct {
	cfg *Config
}

// NewFilter creates a filter with the given configuration.
func NewFilter(cfg *Config) *Filter {
	return &Filter{cfg: cfg}
}

// Candidates applies the three filter stages in order: category whitelist,
// effective-tag OR matching against the venue's search text, and purpose
// heuristics (only when the user picked no tags). When fewer than
// MinCandidates survive, the whole pool comes back untouched so downstream
// always has something to rank.
func (f *Filter) Candidates(pool []models.Venue, purpose models.Purpose, userTags []string) []models.Venue {
	allowed := categoryWhitelists[purpose]
	effectiveTags := EffectiveTags(purpose, userTags)
	explicit := len(userTags) > 0

	filtered := make([]models.Venue, 0, len(pool))
	for i := range pool {
		venue := &pool[i]

		if len(allowed) > 0 && !categoryAllowed(venue.Category, allowed) {
			continue
		}

		text := venue.SearchText()
		if len(effectiveTags) > 0 && !matchesAny(text, effectiveTags) {
			continue
		}

		// Heuristics only kick in when the user expressed nothing.
		if !explicit {
			if purpose == models.PurposeBusiness && venue.HasTag("loud") {
				continue
			}
			if purpose == models.PurposeDate && venue.PriceLevel == 1 {
				continue
			}
		}

		filtered = append(filtered, *venue)
	}

	if len(filtered) < f.cfg.MinCandidates {
		logging.Debug().
			Str("purpose", purpose.String()).
			Int("survivors", len(filtered)).
			Int("pool", len(pool)).
			Msg("Filter left too few candidates, returning full pool")
		return pool
	}
	return filtered
}

func categoryAllowed(cat models.Category, allowed []models.Category) bool {
	for _, a := range allowed {
		if cat == a {
			return true
		}
	}
	return false
}

func matchesAny(text string, tags []string) bool {
	for _, t := range tags {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
