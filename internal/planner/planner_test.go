// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agoraplan/agora/internal/midpoint"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/recommend"
	"github.com/agoraplan/agora/internal/schedule"
	"github.com/agoraplan/agora/internal/stores"
	"github.com/agoraplan/agora/internal/travel"
)

type fakeVenues struct {
	pool []models.Venue
	err  error
}

func (f *fakeVenues) Search(_ context.Context, _ models.Purpose, _ []string, _ string, center models.Location) ([]models.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Place the pool around whatever region is asked about.
	out := make([]models.Venue, len(f.pool))
	copy(out, f.pool)
	for i := range out {
		out[i].Location = models.Location{Lat: center.Lat + 0.001, Lng: center.Lng + 0.001}
	}
	return out, nil
}

type fakeUsers struct {
	users  map[int64]models.User
	venues map[int64]models.Venue
}

func (f *fakeUsers) UserByID(_ context.Context, id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d not found", id)
	}
	return u, nil
}

func (f *fakeUsers) VenuesByIDs(_ context.Context, ids []int64) ([]models.Venue, error) {
	var out []models.Venue
	for _, id := range ids {
		if v, ok := f.venues[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeEvents struct {
	events []models.CalendarEvent
	err    error
}

func (f *fakeEvents) CalendarEvents(_ context.Context, _ []int64, _ time.Time) ([]models.CalendarEvent, error) {
	return f.events, f.err
}

type fakePrefs struct {
	records map[string]*models.PreferenceRecord
}

func (f *fakePrefs) Get(_ context.Context, userID string) (*models.PreferenceRecord, error) {
	if rec, ok := f.records[userID]; ok {
		return rec, nil
	}
	return nil, stores.ErrPreferenceNotFound
}

func mealPool() []models.Venue {
	return []models.Venue{
		{ID: 1, Name: "Hansik Garden", Category: models.CategoryKorean, Tags: []string{"korean", "tasty"}, PriceLevel: 2, Rating: 4.5},
		{ID: 2, Name: "Pasta Lane", Category: models.CategoryWestern, Tags: []string{"western", "ambiance"}, PriceLevel: 3, Rating: 4.2},
		{ID: 3, Name: "Noodle Corner", Category: models.CategorySnack, Tags: []string{"value"}, PriceLevel: 1, Rating: 4.0},
		{ID: 4, Name: "Sky Lounge", Category: models.CategoryFineDining, Tags: []string{"upscale", "view"}, PriceLevel: 5, Rating: 4.7},
		{ID: 5, Name: "Copy Shop", Category: models.CategoryPlace, Tags: nil, PriceLevel: 1, Rating: 3.0},
	}
}

func newTestPlanner(t *testing.T, venueSource VenueSource, events EventSource) *Planner {
	t.Helper()

	db, err := stores.Open(stores.Options{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := recommend.DefaultConfig()
	strategy, err := recommend.NewStrategy("vector", cfg)
	if err != nil {
		t.Fatalf("failed to build strategy: %v", err)
	}

	oracle := travel.NewOracle(nil, stores.NewTravelCache(db, 0), time.Second)

	p := New(Options{
		Optimizer: midpoint.NewOptimizer(oracle, midpoint.DefaultConfig()),
		Venues:    venueSource,
		Users:     &fakeUsers{users: map[int64]models.User{1: {ID: 1, Name: "A"}, 2: {ID: 2, Name: "B"}}},
		Events:    events,
		Prefs:     &fakePrefs{},
		Scheduler: schedule.New(schedule.DefaultConfig()),
		Filter:    recommend.NewFilter(cfg),
		Strategy:  strategy,
	})
	p.now = func() time.Time {
		return time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	}
	return p
}

func TestPlanTwoParticipantMeal(t *testing.T) {
	p := newTestPlanner(t, &fakeVenues{pool: mealPool()}, &fakeEvents{})

	plan, err := p.Plan(context.Background(), Request{
		Participants: []models.Participant{
			{UserID: 1, Name: "A", Location: models.Location{Lat: 37.50, Lng: 127.03}},
			{UserID: 2, Name: "B", Location: models.Location{Lat: 37.55, Lng: 126.92}},
		},
		Purpose:     models.PurposeMeal,
		HorizonDays: 3,
		Duration:    2 * time.Hour,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(plan.Regions) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(plan.Regions))
	}
	seen := map[string]bool{}
	for _, rec := range plan.Regions {
		if seen[rec.Region.Name] {
			t.Errorf("duplicate region %q", rec.Region.Name)
		}
		seen[rec.Region.Name] = true
		if len(rec.Venues) == 0 {
			t.Errorf("region %q has no venues", rec.Region.Name)
		}
	}

	if len(plan.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(plan.Cards))
	}
	for i, card := range plan.Cards {
		if card.Region != plan.Regions[i%len(plan.Regions)].Region.Name {
			t.Errorf("card %d region %q does not follow round-robin", i, card.Region)
		}
		if card.Venue == nil {
			t.Errorf("card %d has no venue", i)
		}
		if card.Time.IsZero() {
			t.Errorf("card %d has no time", i)
		}
	}

	if len(plan.AvailableSlots) == 0 {
		t.Error("expected the raw availability list")
	}
}

func TestPlanVenueFailureDegrades(t *testing.T) {
	p := newTestPlanner(t, &fakeVenues{err: fmt.Errorf("index down")}, &fakeEvents{})

	plan, err := p.Plan(context.Background(), Request{
		Participants: []models.Participant{
			{UserID: 1, Location: models.Location{Lat: 37.50, Lng: 127.03}},
			{UserID: 2, Location: models.Location{Lat: 37.55, Lng: 126.92}},
		},
		Purpose:     models.PurposeMeal,
		HorizonDays: 1,
		Duration:    time.Hour,
	})
	if err != nil {
		t.Fatalf("venue failure must not fail the plan: %v", err)
	}

	if len(plan.Regions) != 3 {
		t.Fatalf("expected regions despite venue failure, got %d", len(plan.Regions))
	}
	for _, card := range plan.Cards {
		if card.Venue != nil {
			t.Errorf("no venues were retrievable, card should have none: %+v", card)
		}
	}
}

func TestPlanCalendarFailureDegrades(t *testing.T) {
	p := newTestPlanner(t, &fakeVenues{pool: mealPool()}, &fakeEvents{err: fmt.Errorf("calendar down")})

	plan, err := p.Plan(context.Background(), Request{
		Participants: []models.Participant{
			{UserID: 1, Location: models.Location{Lat: 37.50, Lng: 127.03}},
			{UserID: 2, Location: models.Location{Lat: 37.55, Lng: 126.92}},
		},
		Purpose:     models.PurposeMeal,
		HorizonDays: 1,
		Duration:    time.Hour,
	})
	if err != nil {
		t.Fatalf("calendar failure must not fail the plan: %v", err)
	}
	if len(plan.AvailableSlots) == 0 {
		t.Error("empty calendars should still yield the free horizon")
	}
}

func TestPlanSingleParticipant(t *testing.T) {
	p := newTestPlanner(t, &fakeVenues{pool: mealPool()}, &fakeEvents{})

	plan, err := p.Plan(context.Background(), Request{
		Participants: []models.Participant{{UserID: 1, Location: models.Location{Lat: 37.50, Lng: 127.03}}},
		Purpose:      models.PurposeCafe,
		HorizonDays:  1,
		Duration:     time.Hour,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan.Regions) != 1 || plan.Regions[0].Region.Name != "Seoul Station" {
		t.Errorf("single participant should get the default region, got %+v", plan.Regions)
	}
}
