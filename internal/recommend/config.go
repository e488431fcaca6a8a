// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import "fmt"

// Config contains all tunables for candidate filtering, scoring, and
// history similarity.
type Config struct {
	// TopN is how many scored venues are returned.
	TopN int `json:"top_n"`

	// MinCandidates is the safety-valve floor. When filtering leaves fewer
	// survivors, the whole pool is returned instead of a near-empty list.
	MinCandidates int `json:"min_candidates"`

	// Vector contains parameters for the vector strategy.
	Vector VectorConfig `json:"vector"`

	// Additive contains parameters for the additive strategy.
	Additive AdditiveConfig `json:"additive"`

	// Similarity contains parameters for history matching.
	Similarity SimilarityConfig `json:"similarity"`
}

// VectorConfig parameterizes the vector scoring strategy.
type VectorConfig struct {
	// TagMatchBonus is added to the purpose bonus per matched effective tag.
	TagMatchBonus float64 `json:"tag_match_bonus"`

	// BusinessWorkspaceBonus applies when a business meetup scores a
	// workspace venue.
	BusinessWorkspaceBonus float64 `json:"business_workspace_bonus"`

	// DateAmbianceBonus applies when a date meetup scores an ambiance venue.
	DateAmbianceBonus float64 `json:"date_ambiance_bonus"`

	// BonusCap bounds the total purpose bonus.
	BonusCap float64 `json:"bonus_cap"`

	// DistanceScale multiplies raw coordinate distance inside the log
	// penalty term.
	DistanceScale float64 `json:"distance_scale"`

	// PenaltyFloor keeps the penalty divisor away from zero.
	PenaltyFloor float64 `json:"penalty_floor"`
}

// AdditiveConfig parameterizes the additive scoring strategy.
type AdditiveConfig struct {
	// LearnedWeightScale scales learned tag weights.
	LearnedWeightScale float64 `json:"learned_weight_scale"`

	// ExplicitHitBonus is added per explicit group-profile tag present on
	// the venue.
	ExplicitHitBonus float64 `json:"explicit_hit_bonus"`

	// NearBonus and FarPenalty adjust for distance in coordinate units.
	NearBonus         float64 `json:"near_bonus"`
	NearDistanceUnits float64 `json:"near_distance_units"`
	FarPenalty        float64 `json:"far_penalty"`
	FarDistanceUnits  float64 `json:"far_distance_units"`

	// RatingWeight scales the venue rating contribution.
	RatingWeight float64 `json:"rating_weight"`
}

// SimilarityConfig parameterizes history matching.
type SimilarityConfig struct {
	// TagWeight and SizeWeight combine Jaccard tag similarity with group
	// size closeness. They should sum to 1.
	TagWeight  float64 `json:"tag_weight"`
	SizeWeight float64 `json:"size_weight"`

	// SizeDecay controls how fast size similarity falls with the group
	// size difference.
	SizeDecay float64 `json:"size_decay"`

	// MinSimilarity drops weak matches.
	MinSimilarity float64 `json:"min_similarity"`

	// TopN is how many history matches are surfaced.
	TopN int `json:"top_n"`
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() *Config {
	return &Config{
		TopN:          10,
		MinCandidates: 3,
		Vector: VectorConfig{
			TagMatchBonus:          0.3,
			BusinessWorkspaceBonus: 0.5,
			DateAmbianceBonus:      0.3,
			BonusCap:               2.5,
			DistanceScale:          5.0,
			PenaltyFloor:           0.1,
		},
		Additive: AdditiveConfig{
			LearnedWeightScale: 0.5,
			ExplicitHitBonus:   5.0,
			NearBonus:          2.0,
			NearDistanceUnits:  500,
			FarPenalty:         3.0,
			FarDistanceUnits:   2000,
			RatingWeight:       0.5,
		},
		Similarity: SimilarityConfig{
			TagWeight:     0.7,
			SizeWeight:    0.3,
			SizeDecay:     0.5,
			MinSimilarity: 0.3,
			TopN:          5,
		},
	}
}

// Validate checks the configuration for values that would corrupt scoring.
func (c *Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.MinCandidates < 0 {
		return fmt.Errorf("min_candidates must be non-negative, got %d", c.MinCandidates)
	}

	if c.Vector.BonusCap < 1 {
		return fmt.Errorf("vector.bonus_cap must be at least 1, got %f", c.Vector.BonusCap)
	}
	if c.Vector.TagMatchBonus < 0 {
		return fmt.Errorf("vector.tag_match_bonus must be non-negative, got %f", c.Vector.TagMatchBonus)
	}
	if c.Vector.DistanceScale <= 0 {
		return fmt.Errorf("vector.distance_scale must be positive, got %f", c.Vector.DistanceScale)
	}
	if c.Vector.PenaltyFloor <= 0 {
		return fmt.Errorf("vector.penalty_floor must be positive, got %f", c.Vector.PenaltyFloor)
	}

	if c.Additive.NearDistanceUnits >= c.Additive.FarDistanceUnits {
		return fmt.Errorf("additive.near_distance_units (%f) must be below far_distance_units (%f)",
			c.Additive.NearDistanceUnits, c.Additive.FarDistanceUnits)
	}

	if c.Similarity.TagWeight < 0 || c.Similarity.SizeWeight < 0 {
		return fmt.Errorf("similarity weights must be non-negative")
	}
	if c.Similarity.MinSimilarity < 0 || c.Similarity.MinSimilarity >= 1 {
		return fmt.Errorf("similarity.min_similarity must be in [0, 1), got %f", c.Similarity.MinSimilarity)
	}
	if c.Similarity.TopN < 1 {
		return fmt.Errorf("similarity.top_n must be positive, got %d", c.Similarity.TopN)
	}

	return nil
}
