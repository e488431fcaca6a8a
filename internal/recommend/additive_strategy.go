// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"strings"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/models"
)

// AdditiveStrategy sums weighted tag contributions: group learned weights,
// per-purpose base weights, explicit-tag hit bonuses, a distance adjustment,
// and a rating term. Simpler and more explainable than the vector strategy,
// at the cost of ignoring cross-tag interactions.
type AdditiveStrategy struct {
	cfg *Config
}

// Name implements Strategy.
func (s *AdditiveStrategy) Name() string { return "additive" }

// Score implements Strategy.
func (s *AdditiveStrategy) Score(candidates []models.Venue, input ScoreInput, topN int) []models.ScoredVenue {
	purposeWeights := purposeTagWeights[input.Purpose]
	scored := make([]models.ScoredVenue, 0, len(candidates))

	for i := range candidates {
		venue := &candidates[i]
		text := venue.SearchText()

		var score float64

		for tag, weight := range input.GroupProfile.TagWeights {
			if strings.Contains(text, tag) {
				score += weight * s.cfg.Additive.LearnedWeightScale
			}
		}

		for tag, weight := range purposeWeights {
			if strings.Contains(text, tag) {
				score += weight
			}
		}

		for _, tag := range input.UserTags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" && strings.Contains(text, tag) {
				score += s.cfg.Additive.ExplicitHitBonus
			}
		}

		meters := geo.HaversineMeters(venue.Location, input.Reference)
		if meters < s.cfg.Additive.NearDistanceUnits {
			score += s.cfg.Additive.NearBonus
		} else if meters > s.cfg.Additive.FarDistanceUnits {
			score -= s.cfg.Additive.FarPenalty
		}

		score += venue.Rating * s.cfg.Additive.RatingWeight

		scored = append(scored, models.ScoredVenue{Venue: *venue, Score: score})
	}

	return sortScored(scored, topN)
}
