// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"testing"

	"github.com/agoraplan/agora/internal/models"
)

func testHistory() []models.MeetingHistoryRecord {
	return []models.MeetingHistoryRecord{
		{ID: 1, Purpose: models.PurposeMeal, Tags: []string{"tasty", "korean"},
			ParticipantCount: 4, RegionName: "Gangnam Station", VenueName: "Seoul Grill",
			VenueCategory: models.CategoryKorean, Satisfaction: 4.5},
		{ID: 2, Purpose: models.PurposeMeal, Tags: []string{"tasty", "korean"},
			ParticipantCount: 4, RegionName: "Gangnam Station", VenueName: "Seoul Grill",
			VenueCategory: models.CategoryKorean, Satisfaction: 3.0},
		{ID: 3, Purpose: models.PurposeMeal, Tags: []string{"pasta", "western"},
			ParticipantCount: 2, RegionName: "Gangnam", VenueName: "Pasta Bar",
			VenueCategory: models.CategoryWestern, Satisfaction: 5.0},
		{ID: 4, Purpose: models.PurposeDrinking, Tags: []string{"tasty", "korean"},
			ParticipantCount: 4, RegionName: "Gangnam", VenueName: "Soju House",
			VenueCategory: models.CategoryPub, Satisfaction: 5.0},
		{ID: 5, Purpose: models.PurposeMeal, Tags: []string{"tasty", "korean"},
			ParticipantCount: 4, RegionName: "Hongdae", VenueName: "Han River Table",
			VenueCategory: models.CategoryKorean, Satisfaction: 4.0},
	}
}

func TestMatchesFiltersPurposeAndRegion(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultConfig())
	got := m.Matches(testHistory(), models.PurposeMeal, []string{"tasty", "korean"}, "Gangnam", 4)

	for _, match := range got {
		if match.VenueName == "Soju House" {
			t.Error("drinking record leaked into meal matches")
		}
		if match.VenueName == "Han River Table" {
			t.Error("Hongdae record leaked into Gangnam matches")
		}
	}
	if len(got) == 0 {
		t.Fatal("expected at least one match")
	}
	if got[0].VenueName != "Seoul Grill" {
		t.Errorf("expected Seoul Grill first, got %s", got[0].VenueName)
	}
}

func TestMatchesDedupeKeepsBest(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultConfig())
	got := m.Matches(testHistory(), models.PurposeMeal, []string{"tasty", "korean"}, "Gangnam", 4)

	seen := 0
	for _, match := range got {
		if match.VenueName == "Seoul Grill" {
			seen++
			// Perfect tag and size similarity scored by the better visit.
			want := 1.0 * 4.5
			if diff := match.Score - want; diff < -1e-9 || diff > 1e-9 {
				t.Errorf("expected deduped score %f, got %f", want, match.Score)
			}
		}
	}
	if seen != 1 {
		t.Errorf("expected Seoul Grill exactly once, got %d", seen)
	}
}

func TestMatchesDropsWeakSimilarity(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultConfig())

	// Disjoint tags and a very different group size sit under the floor.
	history := []models.MeetingHistoryRecord{
		{ID: 1, Purpose: models.PurposeMeal, Tags: []string{"sushi"},
			ParticipantCount: 20, RegionName: "Gangnam", VenueName: "Mismatch",
			VenueCategory: models.CategoryJapanese, Satisfaction: 5.0},
	}

	got := m.Matches(history, models.PurposeMeal, []string{"bbq", "beef"}, "Gangnam", 2)
	if len(got) != 0 {
		t.Errorf("expected weak match dropped, got %v", got)
	}
}

func TestMatchesSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultConfig())

	history := []models.MeetingHistoryRecord{
		{ID: 1, Purpose: models.PurposeMeal, Tags: nil,
			ParticipantCount: 4, RegionName: "Gangnam", VenueName: "", Satisfaction: 4.0},
		{ID: 2, Purpose: models.PurposeMeal, Tags: []string{"", "  "},
			ParticipantCount: 4, RegionName: "Gangnam", VenueName: "Blank Tags",
			VenueCategory: models.CategoryKorean, Satisfaction: 4.0},
		{ID: 3, Purpose: models.PurposeMeal, Tags: []string{"tasty"},
			ParticipantCount: 4, RegionName: "Gangnam", VenueName: "Good Record",
			VenueCategory: models.CategoryKorean, Satisfaction: 4.0},
	}

	got := m.Matches(history, models.PurposeMeal, []string{"tasty"}, "Gangnam", 4)

	for _, match := range got {
		if match.VenueName == "" {
			t.Error("record without a venue name should be skipped")
		}
	}

	found := false
	for _, match := range got {
		if match.VenueName == "Good Record" {
			found = true
		}
	}
	if !found {
		t.Error("expected the well-formed record to match")
	}
}

func TestMatchesTopN(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	m := NewMatcher(cfg)

	history := make([]models.MeetingHistoryRecord, 10)
	for i := range history {
		history[i] = models.MeetingHistoryRecord{
			ID:               int64(i + 1),
			Purpose:          models.PurposeMeal,
			Tags:             []string{"tasty"},
			ParticipantCount: 4,
			RegionName:       "Gangnam",
			VenueName:        string(rune('A' + i)),
			VenueCategory:    models.CategoryKorean,
			Satisfaction:     4.0,
		}
	}

	got := m.Matches(history, models.PurposeMeal, []string{"tasty"}, "Gangnam", 4)
	if len(got) != cfg.Similarity.TopN {
		t.Errorf("expected %d matches, got %d", cfg.Similarity.TopN, len(got))
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	a := tagSet([]string{"a", "b", "c"})
	b := tagSet([]string{"b", "c", "d"})

	if got := jaccard(a, b); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := jaccard(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty sets, got %f", got)
	}
	if got := jaccard(a, a); got != 1.0 {
		t.Errorf("expected 1.0 for identical sets, got %f", got)
	}
}
