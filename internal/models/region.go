// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import "time"

// Hotspot is a curated candidate meeting region with known coordinates,
// typically a transit hub. The midpoint optimizer only ever proposes regions
// from the hotspot catalogue.
type Hotspot struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Lines    []string `json:"lines,omitempty"`
}

// ParticipantTransit is one participant's travel time to a candidate region.
type ParticipantTransit struct {
	UserID  int64  `json:"user_id,omitempty"`
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
	// Estimated is true when the minutes came from the distance fallback
	// rather than the routing provider or cache.
	Estimated bool `json:"estimated,omitempty"`
}

// Region is a ranked candidate meeting region produced by the midpoint
// optimizer, including the per-participant transit breakdown.
type Region struct {
	Name     string   `json:"region_name"`
	Location Location `json:"location"`

	// Score is the fairness-aware cost: mean travel time plus the weighted
	// equity term. Lower is better.
	Score float64 `json:"score,omitempty"`

	// AvgMinutes is the mean travel time across participants.
	AvgMinutes int `json:"avg_minutes,omitempty"`

	// Transit breaks travel time down per participant.
	Transit []ParticipantTransit `json:"transit,omitempty"`

	// Central marks the geographic-diversity pick: the hotspot nearest the
	// participant centroid rather than the fairness-score winner.
	Central bool `json:"central,omitempty"`
}

// MeetingHistoryRecord is a completed meeting used as a similarity signal.
// Written by collaborators after a meeting concludes; read-only here.
type MeetingHistoryRecord struct {
	ID               int64     `json:"id"`
	Purpose          Purpose   `json:"purpose"`
	Tags             []string  `json:"tags"`
	ParticipantCount int       `json:"participant_count"`
	RegionName       string    `json:"region_name"`
	VenueName        string    `json:"venue_name"`
	VenueCategory    Category  `json:"venue_category"`
	Satisfaction     float64   `json:"satisfaction"`
	CreatedAt        time.Time `json:"created_at"`
}

// HistoryMatch is a venue recommended from similar past meetings.
type HistoryMatch struct {
	VenueName  string   `json:"venue_name"`
	Category   Category `json:"category"`
	Similarity float64  `json:"similarity"`
	Score      float64  `json:"score"`
}
