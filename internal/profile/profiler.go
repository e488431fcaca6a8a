// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package profile derives per-user preference vectors from visit history and
// folds review outcomes back into learned tag weights. Everything here is
// pure computation; persistence belongs to the stores.
package profile

import (
	"github.com/agoraplan/agora/internal/models"
)

// Per-visit vector adjustments. A visit to a venue relevant to the purpose
// nudges the dimensions its tags speak to.
const (
	priceStep    = 0.15
	ambianceStep = 0.2
	privacyStep  = 0.2
	alcoholStep  = 0.3
)

// referenceTags maps each purpose to the tags that make a past visit count
// as evidence for that purpose. Meal accepts any visit.
var referenceTags = map[models.Purpose][]string{
	models.PurposeBusiness: {"quiet", "room", "meeting", "hotel", "business"},
	models.PurposeDate:     {"ambiance", "view", "wine", "pasta"},
	models.PurposeStudy:    {"quiet", "quiet-work", "study"},
	models.PurposeDrinking: {"alcohol", "pub", "group"},
	models.PurposeMeal:     {"tasty", "korean", "western"},
	models.PurposeCafe:     {"cafe", "dessert"},
}

// priors are the cold-start vectors used when the user's history holds no
// purpose-relevant visits. Purposes without an entry fall back to neutral.
var priors = map[models.Purpose]models.PreferenceVector{
	models.PurposeBusiness: {0.1, 0.9, 0.8, 0.9, 0.3},
	models.PurposeDate:     {0.3, 0.7, 0.9, 0.6, 0.5},
	models.PurposeStudy:    {0.8, 0.3, 0.2, 0.95, 0.0},
}

// Profiler derives preference vectors. Stateless and safe for concurrent use.
type Profiler struct{}

// NewProfiler creates a profiler.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// DeriveVector builds a user's preference vector for a purpose from the
// venues they have visited. Deterministic: the same history and purpose
// always produce the same vector.
//
// Starting from neutral 0.5s, each history venue relevant to the purpose
// adjusts the dimensions its tags indicate. A history with no relevant
// visits falls back to the purpose prior. The result is clamped into
// [models.VectorMin, models.VectorMax].
func (p *Profiler) DeriveVector(history []models.Venue, purpose models.Purpose) models.PreferenceVector {
	refs := referenceTags[purpose]
	vector := models.NeutralVector()

	validCount := 0
	for i := range history {
		venue := &history[i]
		if purpose != models.PurposeMeal && !venue.HasAnyTag(refs...) {
			continue
		}
		validCount++

		if venue.PriceLevel >= 4 {
			vector[models.DimPrice] -= priceStep
		} else if venue.PriceLevel <= 2 {
			vector[models.DimPrice] += priceStep
		}

		if venue.HasTag("ambiance") {
			vector[models.DimAmbiance] += ambianceStep
		}
		if venue.HasTag("room") || venue.HasTag("quiet-work") {
			vector[models.DimPrivacy] += privacyStep
		}
		if venue.HasTag("alcohol") {
			vector[models.DimAlcohol] += alcoholStep
		}
	}

	if validCount == 0 {
		if prior, ok := priors[purpose]; ok {
			vector = prior
		} else {
			vector = models.NeutralVector()
		}
	}

	return vector.Clamp()
}

// GroupVector derives the group's shared vector: the element-wise mean of
// each member's vector. Histories are per member, aligned by index.
func (p *Profiler) GroupVector(members [][]models.Venue, purpose models.Purpose) models.PreferenceVector {
	vectors := make([]models.PreferenceVector, len(members))
	for i, history := range members {
		vectors[i] = p.DeriveVector(history, purpose)
	}
	return models.MeanVectors(vectors)
}
