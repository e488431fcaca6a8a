// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import "time"

// TagWeightMin and TagWeightMax bound every learned tag weight.
const (
	TagWeightMin = -10.0
	TagWeightMax = 10.0
)

// PreferenceRecord is a user's persisted taste state. It is mutated only by
// the preference learner (on review submission) or explicit user edits, never
// mid-recommendation.
type PreferenceRecord struct {
	// Foods, DislikedFoods, Vibes, Alcohol, and Conditions are explicit tag
	// lists the user picked in onboarding or settings.
	Foods         []string `json:"foods,omitempty"`
	DislikedFoods []string `json:"disliked_foods,omitempty"`
	Vibes         []string `json:"vibes,omitempty"`
	Alcohol       []string `json:"alcohol,omitempty"`
	Conditions    []string `json:"conditions,omitempty"`

	// TagWeights is the learned tag->weight map. Every weight stays within
	// [TagWeightMin, TagWeightMax].
	TagWeights map[string]float64 `json:"tag_weights"`

	// AvgSpend is the user's average spend per meetup in local currency.
	AvgSpend int `json:"avg_spend"`
}

// ExplicitTags returns the union of all explicit preference tag lists,
// excluding dislikes.
func (p *PreferenceRecord) ExplicitTags() []string {
	out := make([]string, 0, len(p.Foods)+len(p.Vibes)+len(p.Alcohol)+len(p.Conditions))
	out = append(out, p.Foods...)
	out = append(out, p.Vibes...)
	out = append(out, p.Alcohol...)
	out = append(out, p.Conditions...)
	return out
}

// User is a participant as supplied by the identity store. Read-only from the
// core's perspective except for the preference record, which the learner
// updates through the preference store.
type User struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Home     Location         `json:"home"`
	History  []int64          `json:"history_venue_ids,omitempty"`
	Prefs    PreferenceRecord `json:"preferences"`
	AgeGroup string           `json:"age_group,omitempty"`
	Gender   string           `json:"gender,omitempty"`
}

// Participant is the minimal per-person input to midpoint optimization:
// someone with a name and a starting coordinate. Manual locations entered for
// absent friends become participants without a user ID.
type Participant struct {
	UserID   int64    `json:"user_id,omitempty"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// CalendarEvent is a busy interval on a participant's calendar. The scheduler
// only reads these; event CRUD belongs to the calendar store collaborator.
type CalendarEvent struct {
	ID       string        `json:"id"`
	UserID   int64         `json:"user_id"`
	Title    string        `json:"title,omitempty"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Purpose  Purpose       `json:"purpose"`
	Location string        `json:"location_name,omitempty"`
}

// End returns the exclusive end of the busy interval.
func (e *CalendarEvent) End() time.Time {
	return e.Start.Add(e.Duration)
}
