// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

// Dimensions of a PreferenceVector. The order is fixed; scoring dots a group
// vector against a venue vector built in the same order.
const (
	DimPrice    = iota // price sensitivity: high = prefers cheap
	DimRating          // rating sensitivity
	DimAmbiance        // ambiance preference
	DimPrivacy         // privacy / quiet-work preference
	DimAlcohol         // alcohol affinity

	// VectorDims is the number of preference dimensions.
	VectorDims = 5
)

// Vector component bounds. Derivation clamps every component into this range
// so no single dimension can dominate a dot product.
const (
	VectorMin = 0.1
	VectorMax = 0.9
)

// PreferenceVector is a fixed five-dimension taste summary, derived per user
// per purpose. A group vector is the element-wise mean across members.
type PreferenceVector [VectorDims]float64

// NeutralVector returns the all-0.5 starting vector.
func NeutralVector() PreferenceVector {
	return PreferenceVector{0.5, 0.5, 0.5, 0.5, 0.5}
}

// Clamp returns a copy with every component forced into [VectorMin, VectorMax].
func (v PreferenceVector) Clamp() PreferenceVector {
	for i := range v {
		if v[i] < VectorMin {
			v[i] = VectorMin
		}
		if v[i] > VectorMax {
			v[i] = VectorMax
		}
	}
	return v
}

// Dot returns the dot product of two vectors.
func (v PreferenceVector) Dot(o PreferenceVector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// MeanVectors returns the element-wise mean of the given vectors. An empty
// input yields the neutral vector so a group with no resolvable members still
// scores venues sensibly.
func MeanVectors(vs []PreferenceVector) PreferenceVector {
	if len(vs) == 0 {
		return NeutralVector()
	}
	var out PreferenceVector
	for _, v := range vs {
		for i := range v {
			out[i] += v[i]
		}
	}
	for i := range out {
		out[i] /= float64(len(vs))
	}
	return out
}

// GroupProfile aggregates tag weights across a meeting's participants:
// explicit preference tags contribute a fixed indicator weight, learned
// weights contribute as-is. Used by the additive scoring strategy.
type GroupProfile struct {
	TagWeights map[string]float64 `json:"tag_weights"`
}

// Weight returns the aggregated weight for a tag, zero when absent.
func (g *GroupProfile) Weight(tag string) float64 {
	if g == nil || g.TagWeights == nil {
		return 0
	}
	return g.TagWeights[tag]
}
