// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"testing"

	"github.com/agoraplan/agora/internal/models"
)

func testPool() []models.Venue {
	return []models.Venue{
		{ID: 1, Name: "Quiet Course House", Category: models.CategoryFineDining, PriceLevel: 5, Tags: []string{"quiet", "course", "room", "business"}},
		{ID: 2, Name: "Coworking Hub", Category: models.CategoryWorkspace, PriceLevel: 2, Tags: []string{"meeting-room", "projector", "quiet"}},
		{ID: 3, Name: "Loud Beer Hall", Category: models.CategoryPub, PriceLevel: 2, Tags: []string{"alcohol", "loud", "beer"}},
		{ID: 4, Name: "Wine Terrace", Category: models.CategoryBar, PriceLevel: 4, Tags: []string{"wine", "ambiance", "view"}},
		{ID: 5, Name: "Study Corner", Category: models.CategoryCafe, PriceLevel: 1, Tags: []string{"quiet", "quiet-work", "study", "laptop"}},
		{ID: 6, Name: "Snack Cart", Category: models.CategorySnack, PriceLevel: 1, Tags: []string{"casual"}},
		{ID: 7, Name: "Hotel Lounge", Category: models.CategoryHotel, PriceLevel: 5, Tags: []string{"lounge", "quiet", "parking"}},
		{ID: 8, Name: "Pasta Kitchen", Category: models.CategoryWestern, PriceLevel: 3, Tags: []string{"pasta", "casual", "tasty"}},
	}
}

func TestCandidatesBusinessWhitelist(t *testing.T) {
	t.Parallel()

	f := NewFilter(DefaultConfig())
	got := f.Candidates(testPool(), models.PurposeBusiness, nil)

	for _, v := range got {
		if v.Category == models.CategoryPub || v.Category == models.CategoryBar {
			t.Errorf("business filter let through %s (%s)", v.Name, v.Category)
		}
		if v.HasTag("loud") {
			t.Errorf("business heuristic should drop loud venues, got %s", v.Name)
		}
	}
	if len(got) < 3 {
		t.Errorf("expected at least 3 business candidates, got %d", len(got))
	}
}

func TestCandidatesDateDropsCheapest(t *testing.T) {
	t.Parallel()

	pool := []models.Venue{
		{ID: 1, Name: "Wine Terrace", Category: models.CategoryBar, PriceLevel: 4, Tags: []string{"wine", "ambiance"}},
		{ID: 2, Name: "Rooftop View", Category: models.CategoryCafe, PriceLevel: 3, Tags: []string{"rooftop", "view"}},
		{ID: 3, Name: "Cheap Date Spot", Category: models.CategoryCafe, PriceLevel: 1, Tags: []string{"date"}},
		{ID: 4, Name: "Course Room", Category: models.CategoryFineDining, PriceLevel: 5, Tags: []string{"course", "quiet"}},
	}

	f := NewFilter(DefaultConfig())
	got := f.Candidates(pool, models.PurposeDate, nil)

	for _, v := range got {
		if v.PriceLevel == 1 {
			t.Errorf("date heuristic should drop price-1 venues, got %s", v.Name)
		}
	}
}

func TestCandidatesExplicitTagsSkipHeuristics(t *testing.T) {
	t.Parallel()

	pool := []models.Venue{
		{ID: 1, Name: "Cheap Date Spot A", Category: models.CategoryCafe, PriceLevel: 1, Tags: []string{"date"}},
		{ID: 2, Name: "Cheap Date Spot B", Category: models.CategoryCafe, PriceLevel: 1, Tags: []string{"date"}},
		{ID: 3, Name: "Cheap Date Spot C", Category: models.CategoryCafe, PriceLevel: 1, Tags: []string{"date"}},
	}

	f := NewFilter(DefaultConfig())
	got := f.Candidates(pool, models.PurposeDate, []string{"date"})

	if len(got) != 3 {
		t.Errorf("explicit tags should bypass the price heuristic, got %d venues", len(got))
	}
}

func TestCandidatesSafetyValve(t *testing.T) {
	t.Parallel()

	pool := testPool()
	f := NewFilter(DefaultConfig())

	// A tag nothing matches leaves zero survivors; the valve returns the pool.
	got := f.Candidates(pool, models.PurposeMeal, []string{"zzz-no-such-tag"})

	if len(got) != len(pool) {
		t.Errorf("expected full pool from safety valve, got %d of %d", len(got), len(pool))
	}
}

func TestCandidatesStudy(t *testing.T) {
	t.Parallel()

	f := NewFilter(DefaultConfig())
	got := f.Candidates(testPool(), models.PurposeStudy, nil)

	// Fewer than 3 study venues exist in the pool, so the valve fires.
	if len(got) != len(testPool()) {
		t.Errorf("expected safety valve with a thin pool, got %d", len(got))
	}
}

func TestEffectiveTags(t *testing.T) {
	t.Parallel()

	got := EffectiveTags(models.PurposeCafe, []string{" Dessert ", ""})
	if len(got) != 1 || got[0] != "dessert" {
		t.Errorf("expected normalized user tags, got %v", got)
	}

	defaults := EffectiveTags(models.PurposeCafe, nil)
	if len(defaults) == 0 {
		t.Fatal("expected default cafe vocabulary")
	}
	found := false
	for _, tag := range defaults {
		if tag == "coffee" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected coffee in cafe defaults, got %v", defaults)
	}
}
