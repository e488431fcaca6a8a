// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package api

import "github.com/agoraplan/agora/internal/models"

// ParticipantInput is one participant in a plan or recommend request.
// Either a known user ID or an explicit location must be given; manual
// locations for absent friends carry no user ID.
type ParticipantInput struct {
	UserID   int64            `json:"user_id,omitempty"`
	Name     string           `json:"name,omitempty" validate:"max=100"`
	Location *models.Location `json:"location,omitempty"`
}

// PlanRequest asks for a complete meetup plan.
type PlanRequest struct {
	Participants    []ParticipantInput `json:"participants" validate:"required,min=1,max=20,dive"`
	Purpose         string             `json:"purpose" validate:"omitempty,purpose"`
	Tags            []string           `json:"tags" validate:"max=20,dive,max=50"`
	HorizonDays     int                `json:"horizon_days" validate:"omitempty,min=1,max=30"`
	DurationMinutes int                `json:"duration_minutes" validate:"omitempty,min=30,max=720"`
}

// RecommendRequest asks for region and venue recommendations without
// scheduling. A RegionName switches to single-place search around that
// region instead of midpoint optimization; participants are optional in
// that mode.
type RecommendRequest struct {
	Participants []ParticipantInput `json:"participants" validate:"omitempty,max=20,dive"`
	Purpose      string             `json:"purpose" validate:"omitempty,purpose"`
	Tags         []string           `json:"tags" validate:"max=20,dive,max=50"`
	RegionName   string             `json:"region_name" validate:"max=100"`
}

// AvailabilityRequest asks for the group's free slots.
type AvailabilityRequest struct {
	UserIDs         []int64 `json:"user_ids" validate:"required,min=1,max=20"`
	DaysToCheck     int     `json:"days_to_check" validate:"omitempty,min=1,max=30"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,min=30,max=720"`
	Purpose         string  `json:"purpose" validate:"omitempty,purpose"`
}

// ReviewRequest submits a post-meetup review. The overall rating is the
// mean of the four sub-scores.
type ReviewRequest struct {
	UserID       int64    `json:"user_id" validate:"required"`
	PlaceName    string   `json:"place_name" validate:"required,max=200"`
	ScoreTaste   float64  `json:"score_taste" validate:"min=1,max=5"`
	ScoreService float64  `json:"score_service" validate:"min=1,max=5"`
	ScorePrice   float64  `json:"score_price" validate:"min=1,max=5"`
	ScoreVibe    float64  `json:"score_vibe" validate:"min=1,max=5"`
	Tags         []string `json:"tags" validate:"max=20,dive,max=50"`
	Comment      string   `json:"comment" validate:"max=2000"`
	Reason       string   `json:"reason" validate:"omitempty,oneof=price taste service ambiance vibe"`
}
