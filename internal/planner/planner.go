// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package planner composes the meeting flow: midpoint optimization, per
// region venue retrieval plus filtering and scoring, availability, and the
// final when/where/what cards.
package planner

import (
	"context"
	"strconv"
	"time"

	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/midpoint"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/profile"
	"github.com/agoraplan/agora/internal/recommend"
	"github.com/agoraplan/agora/internal/schedule"
)

// VenueSource retrieves venue candidates for a region.
type VenueSource interface {
	Search(ctx context.Context, purpose models.Purpose, userTags []string, regionName string, center models.Location) ([]models.Venue, error)
}

// UserSource resolves users and their visit histories.
type UserSource interface {
	UserByID(ctx context.Context, id int64) (models.User, error)
	VenuesByIDs(ctx context.Context, ids []int64) ([]models.Venue, error)
}

// EventSource supplies calendar busy intervals.
type EventSource interface {
	CalendarEvents(ctx context.Context, userIDs []int64, from time.Time) ([]models.CalendarEvent, error)
}

// PreferenceSource supplies persisted preference records, keyed the way
// the preference store keys them.
type PreferenceSource interface {
	Get(ctx context.Context, userID string) (*models.PreferenceRecord, error)
}

// Request is one plan computation.
type Request struct {
	Participants []models.Participant
	Purpose      models.Purpose
	UserTags     []string
	HorizonDays  int
	Duration     time.Duration
}

// Planner orchestrates a full meetup plan.
type Planner struct {
	optimizer *midpoint.Optimizer
	venues    VenueSource
	users     UserSource
	events    EventSource
	prefs     PreferenceSource
	scheduler *schedule.Scheduler
	profiler  *profile.Profiler
	filter    *recommend.Filter
	strategy  recommend.Strategy
	topN      int

	// now is swappable for tests.
	now func() time.Time
}

// Options wires the planner's collaborators.
type Options struct {
	Optimizer *midpoint.Optimizer
	Venues    VenueSource
	Users     UserSource
	Events    EventSource
	Prefs     PreferenceSource
	Scheduler *schedule.Scheduler
	Filter    *recommend.Filter
	Strategy  recommend.Strategy

	// TopN caps venues per region. Zero picks the recommendation default.
	TopN int
}

// New builds a planner.
func New(opts Options) *Planner {
	if opts.TopN <= 0 {
		opts.TopN = recommend.DefaultConfig().TopN
	}
	return &Planner{
		optimizer: opts.Optimizer,
		venues:    opts.Venues,
		users:     opts.Users,
		events:    opts.Events,
		prefs:     opts.Prefs,
		scheduler: opts.Scheduler,
		filter:    opts.Filter,
		strategy:  opts.Strategy,
		topN:      opts.TopN,
		profiler:  profile.NewProfiler(),
		now:       time.Now,
	}
}

// Plan computes a complete meetup plan. Collaborator failures degrade to
// partial results; only context cancellation aborts the run.
func (p *Planner) Plan(ctx context.Context, req Request) (models.Plan, error) {
	start := time.Now()
	plan, err := p.plan(ctx, req)
	metrics.RecordPlan(time.Since(start), err)
	return plan, err
}

// Recommend computes ranked regions with their venue shortlists, without
// scheduling. It is the region half of a plan and also serves the
// recommendation endpoint directly.
func (p *Planner) Recommend(ctx context.Context, req Request) ([]models.RegionRecommendation, error) {
	regions, err := p.optimizer.Recommend(ctx, req.Participants)
	if err != nil {
		return nil, err
	}
	return p.rankRegionVenues(ctx, req, regions)
}

// RankVenues runs filtering and scoring for one known region, used by
// single-place search where no midpoint is wanted.
func (p *Planner) RankVenues(ctx context.Context, req Request, region models.Region) (models.RegionRecommendation, error) {
	recs, err := p.rankRegionVenues(ctx, req, []models.Region{region})
	if err != nil {
		return models.RegionRecommendation{}, err
	}
	return recs[0], nil
}

func (p *Planner) rankRegionVenues(ctx context.Context, req Request, regions []models.Region) ([]models.RegionRecommendation, error) {
	input := p.scoreInput(ctx, req)

	recs := make([]models.RegionRecommendation, 0, len(regions))
	for _, region := range regions {
		pool, err := p.venues.Search(ctx, req.Purpose, req.UserTags, region.Name, region.Location)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Warn().Err(err).Str("region", region.Name).Msg("Venue retrieval failed, region served without venues")
		}

		regionInput := input
		regionInput.Reference = region.Location
		candidates := p.filter.Candidates(pool, req.Purpose, req.UserTags)
		recs = append(recs, models.RegionRecommendation{
			Region: region,
			Venues: p.strategy.Score(candidates, regionInput, p.topN),
		})
	}
	return recs, nil
}

func (p *Planner) plan(ctx context.Context, req Request) (models.Plan, error) {
	recs, err := p.Recommend(ctx, req)
	if err != nil {
		return models.Plan{}, err
	}

	now := p.now()
	events, err := p.events.CalendarEvents(ctx, participantIDs(req.Participants), now)
	if err != nil {
		if ctx.Err() != nil {
			return models.Plan{}, ctx.Err()
		}
		logging.Warn().Err(err).Msg("Calendar lookup failed, scheduling with empty calendars")
		events = nil
	}

	slots := p.scheduler.FreeSlots(now, events, req.HorizonDays, req.Duration)
	top := p.scheduler.Suggest(now, events, req.HorizonDays, req.Duration, req.Purpose)

	return models.Plan{
		Cards:          buildCards(top, recs),
		Regions:        recs,
		AvailableSlots: slots,
	}, nil
}

// scoreInput assembles the group taste profile. Participants without a
// user record contribute nothing; a group of strangers falls back to the
// purpose prior via the profiler.
func (p *Planner) scoreInput(ctx context.Context, req Request) recommend.ScoreInput {
	var histories [][]models.Venue
	var records []models.PreferenceRecord

	for _, part := range req.Participants {
		if part.UserID == 0 {
			continue
		}

		user, err := p.users.UserByID(ctx, part.UserID)
		if err != nil {
			logging.Debug().Err(err).Int64("user_id", part.UserID).Msg("Unknown participant, skipping profile")
			continue
		}

		visited, err := p.users.VenuesByIDs(ctx, user.History)
		if err != nil {
			logging.Debug().Err(err).Int64("user_id", part.UserID).Msg("History resolution failed")
			visited = nil
		}
		histories = append(histories, visited)

		rec, err := p.prefs.Get(ctx, strconv.FormatInt(part.UserID, 10))
		if err == nil && rec != nil {
			records = append(records, *rec)
		}
	}

	if len(histories) == 0 {
		histories = [][]models.Venue{nil}
	}

	return recommend.ScoreInput{
		GroupVector:  p.profiler.GroupVector(histories, req.Purpose),
		GroupProfile: profile.BuildGroupProfile(records),
		Purpose:      req.Purpose,
		UserTags:     req.UserTags,
	}
}

// buildCards pairs the top time slots with regions round-robin, attaching
// each region's best venue.
func buildCards(slots []time.Time, recs []models.RegionRecommendation) []models.PlanCard {
	if len(recs) == 0 {
		return nil
	}

	cards := make([]models.PlanCard, 0, len(slots))
	for i, slot := range slots {
		rec := recs[i%len(recs)]
		card := models.PlanCard{Time: slot, Region: rec.Region.Name}
		if len(rec.Venues) > 0 {
			venue := rec.Venues[0].Venue
			card.Venue = &venue
		}
		cards = append(cards, card)
	}
	return cards
}

func participantIDs(participants []models.Participant) []int64 {
	ids := make([]int64, 0, len(participants))
	for _, p := range participants {
		if p.UserID != 0 {
			ids = append(ids, p.UserID)
		}
	}
	return ids
}
