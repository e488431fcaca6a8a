// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"math"
	"strings"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/models"
)

// VectorStrategy is the canonical scorer: it dots the group preference
// vector against a per-venue vector, multiplies by a capped purpose bonus,
// and divides by a logarithmic distance penalty.
type VectorStrategy struct {
	cfg *Config
}

// Name implements Strategy.
func (s *VectorStrategy) Name() string { return "vector" }

// Score implements Strategy.
func (s *VectorStrategy) Score(candidates []models.Venue, input ScoreInput, topN int) []models.ScoredVenue {
	scored := make([]models.ScoredVenue, 0, len(candidates))

	for i := range candidates {
		venue := &candidates[i]

		match := input.GroupVector.Dot(venueVector(venue))
		bonus := s.purposeBonus(venue, input.Purpose, input.UserTags)

		dist := geo.EuclideanDegrees(venue.Location, input.Reference)
		penalty := math.Log1p(dist * s.cfg.Vector.DistanceScale)

		score := (match * bonus) / (penalty + s.cfg.Vector.PenaltyFloor)
		scored = append(scored, models.ScoredVenue{Venue: *venue, Score: score})
	}

	return sortScored(scored, topN)
}

// venueVector maps a venue's attributes into the preference-vector space so
// it can be dotted against a group vector.
func venueVector(v *models.Venue) models.PreferenceVector {
	var vec models.PreferenceVector

	vec[models.DimPrice] = 1.0 - float64(v.PriceLevel)/5.0

	vec[models.DimRating] = 0.5
	if v.Rating > 4.0 {
		vec[models.DimRating] = 0.8
	}

	vec[models.DimAmbiance] = 0.4
	if v.HasTag("ambiance") {
		vec[models.DimAmbiance] = 0.9
	}

	vec[models.DimPrivacy] = 0.4
	if v.HasTag("room") || v.HasTag("quiet-work") {
		vec[models.DimPrivacy] = 0.9
	}

	vec[models.DimAlcohol] = 0.1
	if v.HasTag("alcohol") {
		vec[models.DimAlcohol] = 0.9
	}

	return vec
}

// purposeBonus multiplies the match score by 1 plus per-tag and purpose
// bonuses, capped at BonusCap.
func (s *VectorStrategy) purposeBonus(v *models.Venue, purpose models.Purpose, userTags []string) float64 {
	bonus := 1.0

	effectiveTags := EffectiveTags(purpose, userTags)
	if len(effectiveTags) > 0 {
		text := v.SearchText()
		matches := 0
		for _, t := range effectiveTags {
			if strings.Contains(text, t) {
				matches++
			}
		}
		bonus += float64(matches) * s.cfg.Vector.TagMatchBonus
	}

	if purpose == models.PurposeBusiness && v.Category == models.CategoryWorkspace {
		bonus += s.cfg.Vector.BusinessWorkspaceBonus
	}
	if purpose == models.PurposeDate && v.HasTag("ambiance") {
		bonus += s.cfg.Vector.DateAmbianceBonus
	}

	return math.Min(bonus, s.cfg.Vector.BonusCap)
}
