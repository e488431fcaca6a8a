// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/midpoint"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/planner"
	"github.com/agoraplan/agora/internal/profile"
	"github.com/agoraplan/agora/internal/recommend"
	"github.com/agoraplan/agora/internal/schedule"
	"github.com/agoraplan/agora/internal/stores"
)

const (
	defaultHorizonDays = 3
	maxRegionResults   = 10

	// lowRatingThreshold is the average rating at or below which a reason
	// is inferred from the weakest sub-score when none is given.
	lowRatingThreshold = 2.5
)

// PreferenceStore persists per-user learned preference profiles.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (*models.PreferenceRecord, error)
	Put(ctx context.Context, userID string, record *models.PreferenceRecord) error
}

// HistorySource supplies past meeting records for similarity matching.
type HistorySource interface {
	MeetingHistory(ctx context.Context, limit int) ([]models.MeetingHistoryRecord, error)
}

// Handler serves the planning API. All dependencies except the planner are
// optional; missing ones degrade the affected endpoints instead of the
// whole server.
type Handler struct {
	planner   *planner.Planner
	scheduler *schedule.Scheduler
	users     planner.UserSource
	events    planner.EventSource
	history   HistorySource
	prefs     PreferenceStore
	learner   *profile.Learner
	matcher   *recommend.Matcher
	ready     func(context.Context) error
	startTime time.Time
	now       func() time.Time
}

// HandlerOptions wires a Handler's dependencies.
type HandlerOptions struct {
	Planner   *planner.Planner
	Scheduler *schedule.Scheduler
	Users     planner.UserSource
	Events    planner.EventSource
	History   HistorySource
	Prefs     PreferenceStore
	Matcher   *recommend.Matcher

	// Ready reports backing-store health for the readiness probe.
	// Nil means always ready.
	Ready func(context.Context) error

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewHandler creates the API handler.
func NewHandler(opts HandlerOptions) *Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		planner:   opts.Planner,
		scheduler: opts.Scheduler,
		users:     opts.Users,
		events:    opts.Events,
		history:   opts.History,
		prefs:     opts.Prefs,
		learner:   profile.NewLearner(),
		matcher:   opts.Matcher,
		ready:     opts.Ready,
		startTime: now(),
		now:       now,
	}
}

// Plan computes a complete meetup plan: regions, venues, and time slots.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req PlanRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	participants, err := h.resolveParticipants(r.Context(), req.Participants)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	plan, err := h.planner.Plan(r.Context(), planner.Request{
		Participants: participants,
		Purpose:      models.ParsePurpose(req.Purpose),
		UserTags:     req.Tags,
		HorizonDays:  orDefault(req.HorizonDays, defaultHorizonDays),
		Duration:     time.Duration(req.DurationMinutes) * time.Minute,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "PLAN_FAILED", "Plan computation failed", err)
		return
	}

	respondSuccess(w, plan, started)
}

// regionResult is one recommended region with its venue shortlist and, when
// history is available, similar past venues.
type regionResult struct {
	Region         models.Region         `json:"region"`
	Venues         []models.ScoredVenue  `json:"venues"`
	HistoryMatches []models.HistoryMatch `json:"history_matches,omitempty"`
}

// Recommend returns ranked regions and venues without scheduling. With a
// region name it searches around that single region instead of optimizing
// a midpoint.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req RecommendRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	purpose := models.ParsePurpose(req.Purpose)
	participants, err := h.resolveParticipants(r.Context(), req.Participants)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	preq := planner.Request{
		Participants: participants,
		Purpose:      purpose,
		UserTags:     req.Tags,
	}

	var recs []models.RegionRecommendation
	if req.RegionName != "" {
		hotspots := midpoint.SearchHotspots(req.RegionName)
		if len(hotspots) == 0 {
			respondError(w, http.StatusNotFound, "REGION_NOT_FOUND",
				fmt.Sprintf("No known region matches %q", req.RegionName), nil)
			return
		}
		spot := hotspots[0]
		rec, err := h.planner.RankVenues(r.Context(), preq, models.Region{
			Name:     spot.Name,
			Location: spot.Location,
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "RECOMMEND_FAILED", "Venue ranking failed", err)
			return
		}
		recs = []models.RegionRecommendation{rec}
	} else {
		if len(participants) == 0 {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"Either participants or a region name is required", nil)
			return
		}
		recs, err = h.planner.Recommend(r.Context(), preq)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "RECOMMEND_FAILED", "Region recommendation failed", err)
			return
		}
	}

	results := make([]regionResult, 0, len(recs))
	hist := h.meetingHistory(r.Context())
	for _, rec := range recs {
		result := regionResult{Region: rec.Region, Venues: rec.Venues}
		if h.matcher != nil && len(hist) > 0 {
			result.HistoryMatches = h.matcher.Matches(hist, purpose, req.Tags, rec.Region.Name, len(participants))
		}
		results = append(results, result)
	}

	respondSuccess(w, map[string]interface{}{"regions": results}, started)
}

// Availability returns the group's shared free slots and the best-ranked
// starts for the requested purpose.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req AvailabilityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	now := h.now()
	var events []models.CalendarEvent
	if h.events != nil {
		var err error
		events, err = h.events.CalendarEvents(r.Context(), req.UserIDs, now)
		if err != nil {
			logging.Warn().Err(err).Msg("Calendar retrieval failed, availability computed without busy intervals")
			events = nil
		}
	}

	horizon := orDefault(req.DaysToCheck, defaultHorizonDays)
	duration := time.Duration(req.DurationMinutes) * time.Minute
	purpose := models.ParsePurpose(req.Purpose)

	slots := h.scheduler.FreeSlots(now, events, horizon, duration)
	top := h.scheduler.Suggest(now, events, horizon, duration, purpose)

	respondSuccess(w, map[string]interface{}{
		"free_slots":      slots,
		"suggested_slots": top,
	}, started)
}

// Review records a venue review and folds it into the reviewer's learned
// tag weights. The rating is the mean of the four sub-scores; a missing
// reason on a poor rating is inferred from the weakest sub-score.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req ReviewRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if h.prefs == nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Preference store is not available", nil)
		return
	}

	scores := map[string]float64{
		"taste":   req.ScoreTaste,
		"service": req.ScoreService,
		"price":   req.ScorePrice,
		"vibe":    req.ScoreVibe,
	}
	rating := (scores["taste"] + scores["service"] + scores["price"] + scores["vibe"]) / 4

	reason := req.Reason
	if reason == "" && rating <= lowRatingThreshold {
		reason = profile.InferReason(scores, rating)
	}

	userID := strconv.FormatInt(req.UserID, 10)
	record, err := h.prefs.Get(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, stores.ErrPreferenceNotFound) {
			respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Preference lookup failed", err)
			return
		}
		record = &models.PreferenceRecord{}
	}

	record.TagWeights = h.learner.ApplyReview(record.TagWeights, req.Tags, rating, reason)
	if err := h.prefs.Put(r.Context(), userID, record); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Preference update failed", err)
		return
	}
	metrics.ReviewsProcessed.Inc()

	respondSuccess(w, map[string]interface{}{
		"user_id":     req.UserID,
		"place_name":  req.PlaceName,
		"rating":      rating,
		"reason":      reason,
		"tag_weights": record.TagWeights,
	}, started)
}

// RegionSearch finds known regions by name fragment.
func (h *Handler) RegionSearch(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter q is required", nil)
		return
	}

	matches := midpoint.SearchHotspots(query)
	if len(matches) > maxRegionResults {
		matches = matches[:maxRegionResults]
	}

	respondSuccess(w, map[string]interface{}{"regions": matches}, started)
}

// resolveParticipants turns request participants into located participants,
// filling missing locations from stored user homes.
func (h *Handler) resolveParticipants(ctx context.Context, inputs []ParticipantInput) ([]models.Participant, error) {
	participants := make([]models.Participant, 0, len(inputs))
	for i, in := range inputs {
		p := models.Participant{UserID: in.UserID, Name: in.Name}
		switch {
		case in.Location != nil:
			p.Location = *in.Location
		case in.UserID != 0 && h.users != nil:
			user, err := h.users.UserByID(ctx, in.UserID)
			if err != nil {
				return nil, fmt.Errorf("participant %d: unknown user %d", i, in.UserID)
			}
			p.Location = user.Home
			if p.Name == "" {
				p.Name = user.Name
			}
		default:
			return nil, fmt.Errorf("participant %d: a location or known user ID is required", i)
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func (h *Handler) meetingHistory(ctx context.Context) []models.MeetingHistoryRecord {
	if h.history == nil {
		return nil
	}
	hist, err := h.history.MeetingHistory(ctx, 0)
	if err != nil {
		logging.Warn().Err(err).Msg("Meeting history retrieval failed, recommendations served without history matches")
		return nil
	}
	return hist
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
