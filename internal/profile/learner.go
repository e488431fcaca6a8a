// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package profile

import (
	"strings"

	"github.com/agoraplan/agora/internal/models"
)

// impactPerStar converts a star offset from neutral into a weight delta.
// A 5-star review adds +1.0 to each tag, a 1-star review subtracts 1.0.
const impactPerStar = 0.5

// neutralRating is the rating that carries no learning signal.
const neutralRating = 3.0

// reasonPenalty is the extra negative weight applied to the tag mapped from
// a disappointment reason on a bad review.
const reasonPenalty = 1.0

// reasonTags maps review reason codes to the tag that absorbs the extra
// penalty. Unknown reasons learn nothing extra.
var reasonTags = map[string]string{
	"price":    "value",
	"taste":    "tasty",
	"service":  "service",
	"ambiance": "ambiance",
	"vibe":     "ambiance",
}

// Learner folds review outcomes into a user's learned tag weights.
// Stateless; the caller owns persistence and at-most-once application.
type Learner struct{}

// NewLearner creates a learner.
func NewLearner() *Learner {
	return &Learner{}
}

// ApplyReview adjusts the weight of every tag attached to a review by
// (rating - 3.0) * 0.5, clamped into [models.TagWeightMin,
// models.TagWeightMax]. A negative impact with a known reason code pushes an
// extra -1.0 onto the reason's mapped tag. Returns the updated map; a nil
// input map is allocated.
//
// A neutral 3-star review with no reason leaves the weights unchanged.
func (l *Learner) ApplyReview(weights map[string]float64, tags []string, rating float64, reason string) map[string]float64 {
	if weights == nil {
		weights = make(map[string]float64, len(tags))
	}

	impact := (rating - neutralRating) * impactPerStar

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		weights[tag] = clampWeight(weights[tag] + impact)
	}

	if impact < 0 {
		if target, ok := reasonTags[strings.ToLower(strings.TrimSpace(reason))]; ok {
			weights[target] = clampWeight(weights[target] - reasonPenalty)
		}
	}

	return weights
}

// InferReason picks the reason code for a bad review from its sub-scores:
// the lowest-scored aspect is assumed to be what went wrong. Returns empty
// when the overall rating is above the complaint threshold.
func InferReason(scores map[string]float64, rating float64) string {
	if rating > 2.5 || len(scores) == 0 {
		return ""
	}

	reason := ""
	lowest := 0.0
	for name, score := range scores {
		if reason == "" || score < lowest || (score == lowest && name < reason) {
			reason = name
			lowest = score
		}
	}
	return reason
}

func clampWeight(w float64) float64 {
	if w < models.TagWeightMin {
		return models.TagWeightMin
	}
	if w > models.TagWeightMax {
		return models.TagWeightMax
	}
	return w
}
