// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"fmt"
	"sort"

	"github.com/agoraplan/agora/internal/models"
)

// ScoreInput carries everything a strategy needs to rank one candidate set.
type ScoreInput struct {
	// GroupVector is the group's mean preference vector.
	GroupVector models.PreferenceVector

	// GroupProfile aggregates the group's tag weights (additive strategy).
	GroupProfile models.GroupProfile

	// Purpose is the meetup purpose.
	Purpose models.Purpose

	// UserTags are the user's explicit filter tags, possibly empty.
	UserTags []string

	// Reference is the point distances are measured from, usually the
	// chosen region's center.
	Reference models.Location
}

// Strategy ranks candidate venues. Implementations are stateless and safe
// for concurrent use.
type Strategy interface {
	// Name returns the strategy identifier ("vector", "additive").
	Name() string

	// Score ranks the candidates best-first and returns at most topN
	// results. An empty candidate set yields an empty slice, not an error.
	Score(candidates []models.Venue, input ScoreInput, topN int) []models.ScoredVenue
}

// NewStrategy returns the named strategy.
func NewStrategy(name string, cfg *Config) (Strategy, error) {
	switch name {
	case "vector":
		return &VectorStrategy{cfg: cfg}, nil
	case "additive":
		return &AdditiveStrategy{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}

// sortScored orders best-first with a deterministic name tie-break and
// truncates to topN.
func sortScored(scored []models.ScoredVenue, topN int) []models.ScoredVenue {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Venue.Name < scored[j].Venue.Name
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
