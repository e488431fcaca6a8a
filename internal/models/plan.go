// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import "time"

// RegionRecommendation is one candidate region together with its ranked
// venues reproduced from filtering and scoring.
type RegionRecommendation struct {
	Region Region        `json:"region"`
	Venues []ScoredVenue `json:"venues"`
}

// PlanCard is one complete "when / where / what" proposal: a time slot paired
// with a region and that region's top venue.
type PlanCard struct {
	Time   time.Time `json:"time"`
	Region string    `json:"region"`
	Venue  *Venue    `json:"venue,omitempty"`
}

// Plan is the orchestrator output: up to three cards plus the full raw
// availability list for manual override.
type Plan struct {
	Cards          []PlanCard             `json:"cards"`
	Regions        []RegionRecommendation `json:"regions"`
	AvailableSlots []time.Time            `json:"all_available_slots"`
}
