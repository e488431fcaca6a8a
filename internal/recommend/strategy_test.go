// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"testing"

	"github.com/agoraplan/agora/internal/models"
)

func TestNewStrategy(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	v, err := NewStrategy("vector", cfg)
	if err != nil || v.Name() != "vector" {
		t.Errorf("expected vector strategy, got %v, %v", v, err)
	}

	a, err := NewStrategy("additive", cfg)
	if err != nil || a.Name() != "additive" {
		t.Errorf("expected additive strategy, got %v, %v", a, err)
	}

	if _, err := NewStrategy("random", cfg); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestVectorScoreEmptyPool(t *testing.T) {
	t.Parallel()

	s := &VectorStrategy{cfg: DefaultConfig()}
	got := s.Score(nil, ScoreInput{GroupVector: models.NeutralVector()}, 10)
	if len(got) != 0 {
		t.Errorf("expected empty result for empty pool, got %d", len(got))
	}
}

func TestVectorScoreSortedAndCapped(t *testing.T) {
	t.Parallel()

	s := &VectorStrategy{cfg: DefaultConfig()}

	pool := make([]models.Venue, 15)
	for i := range pool {
		pool[i] = models.Venue{
			ID:         int64(i + 1),
			Name:       string(rune('a' + i)),
			Category:   models.CategoryRestaurant,
			PriceLevel: 1 + i%5,
			Rating:     3.5 + float64(i%3)*0.5,
			Tags:       []string{"tasty"},
			Location:   models.Location{Lat: 37.5 + float64(i)*0.001, Lng: 127.0},
		}
	}

	input := ScoreInput{
		GroupVector: models.NeutralVector(),
		Purpose:     models.PurposeMeal,
		Reference:   models.Location{Lat: 37.5, Lng: 127.0},
	}

	got := s.Score(pool, input, 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 results, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted descending at %d: %f > %f", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestVectorScoreDistanceMonotonic(t *testing.T) {
	t.Parallel()

	s := &VectorStrategy{cfg: DefaultConfig()}

	near := models.Venue{ID: 1, Name: "Near", Category: models.CategoryRestaurant,
		PriceLevel: 3, Rating: 4.0, Tags: []string{"tasty"},
		Location: models.Location{Lat: 37.501, Lng: 127.0}}
	far := near
	far.ID = 2
	far.Name = "Far"
	far.Location = models.Location{Lat: 37.6, Lng: 127.1}

	input := ScoreInput{
		GroupVector: models.NeutralVector(),
		Purpose:     models.PurposeMeal,
		Reference:   models.Location{Lat: 37.5, Lng: 127.0},
	}

	got := s.Score([]models.Venue{far, near}, input, 10)
	if got[0].Venue.Name != "Near" {
		t.Errorf("identical venues should rank by distance, got %s first", got[0].Venue.Name)
	}
}

func TestVectorBonusCap(t *testing.T) {
	t.Parallel()

	s := &VectorStrategy{cfg: DefaultConfig()}

	// A venue matching many default meal tags would exceed the cap without it.
	v := models.Venue{
		Name:     "Tasty Korean Western Sushi Pasta Steak BBQ Burger Pizza",
		Category: models.CategoryRestaurant,
		Tags:     []string{"tasty", "korean", "western", "sushi", "pasta", "quiet", "casual", "view"},
	}

	bonus := s.purposeBonus(&v, models.PurposeMeal, nil)
	if bonus != DefaultConfig().Vector.BonusCap {
		t.Errorf("expected bonus capped at %f, got %f", DefaultConfig().Vector.BonusCap, bonus)
	}
}

func TestVectorDateFavorsAmbianceOverStudy(t *testing.T) {
	t.Parallel()

	s := &VectorStrategy{cfg: DefaultConfig()}

	venue := models.Venue{
		ID: 1, Name: "Candlelight", Category: models.CategoryFineDining,
		PriceLevel: 5, Rating: 4.5,
		Tags:     []string{"ambiance", "wine", "course"},
		Location: models.Location{Lat: 37.5, Lng: 127.0},
	}
	ref := models.Location{Lat: 37.5, Lng: 127.0}

	dateVec := models.PreferenceVector{0.3, 0.7, 0.9, 0.6, 0.5}
	studyVec := models.PreferenceVector{0.8, 0.3, 0.2, 0.9, 0.1}

	dateScore := s.Score([]models.Venue{venue},
		ScoreInput{GroupVector: dateVec, Purpose: models.PurposeDate, Reference: ref}, 1)[0].Score
	studyScore := s.Score([]models.Venue{venue},
		ScoreInput{GroupVector: studyVec, Purpose: models.PurposeStudy, Reference: ref}, 1)[0].Score

	if dateScore <= studyScore {
		t.Errorf("expensive ambiance venue should score higher for date (%f) than study (%f)",
			dateScore, studyScore)
	}
}

func TestAdditiveScore(t *testing.T) {
	t.Parallel()

	s := &AdditiveStrategy{cfg: DefaultConfig()}

	ref := models.Location{Lat: 37.5, Lng: 127.0}
	pool := []models.Venue{
		{ID: 1, Name: "Nearby Tasty", Category: models.CategoryRestaurant, Rating: 4.0,
			Tags: []string{"tasty"}, Location: models.Location{Lat: 37.5001, Lng: 127.0}},
		{ID: 2, Name: "Distant Tasty", Category: models.CategoryRestaurant, Rating: 4.0,
			Tags: []string{"tasty"}, Location: models.Location{Lat: 37.55, Lng: 127.05}},
	}

	input := ScoreInput{
		GroupProfile: models.GroupProfile{TagWeights: map[string]float64{"tasty": 2.0}},
		Purpose:      models.PurposeMeal,
		Reference:    ref,
	}

	got := s.Score(pool, input, 10)
	if got[0].Venue.Name != "Nearby Tasty" {
		t.Errorf("expected near venue first, got %s", got[0].Venue.Name)
	}

	// near: 2.0*0.5 (learned) + 4.0 (tasty) + 2.0 (restaurant purpose) + 2.0 (near) + 4.0*0.5 = 11.0
	want := 11.0
	if diff := got[0].Score - want; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("expected near score %f, got %f", want, got[0].Score)
	}
}

func TestAdditiveExplicitHitBonus(t *testing.T) {
	t.Parallel()

	s := &AdditiveStrategy{cfg: DefaultConfig()}

	ref := models.Location{Lat: 37.5, Lng: 127.0}
	with := models.Venue{ID: 1, Name: "Pasta Place", Category: models.CategoryWestern,
		Tags: []string{"pasta"}, Location: ref}
	without := models.Venue{ID: 2, Name: "Rice Place", Category: models.CategoryKorean,
		Tags: []string{"rice"}, Location: ref}

	input := ScoreInput{
		Purpose:   models.PurposeMeal,
		UserTags:  []string{"pasta"},
		Reference: ref,
	}

	got := s.Score([]models.Venue{without, with}, input, 10)
	if got[0].Venue.Name != "Pasta Place" {
		t.Errorf("expected explicit tag hit to win, got %s", got[0].Venue.Name)
	}
	if got[0].Score-got[1].Score < DefaultConfig().Additive.ExplicitHitBonus {
		t.Errorf("expected at least the hit bonus between them, got %f and %f",
			got[0].Score, got[1].Score)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top_n", func(c *Config) { c.TopN = 0 }},
		{"low bonus cap", func(c *Config) { c.Vector.BonusCap = 0.5 }},
		{"zero penalty floor", func(c *Config) { c.Vector.PenaltyFloor = 0 }},
		{"inverted distances", func(c *Config) { c.Additive.NearDistanceUnits = 3000 }},
		{"bad min similarity", func(c *Config) { c.Similarity.MinSimilarity = 1.0 }},
		{"zero similarity top_n", func(c *Config) { c.Similarity.TopN = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
