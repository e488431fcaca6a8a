// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package profile

import (
	"testing"

	"github.com/agoraplan/agora/internal/models"
)

func TestDeriveVectorEmptyHistoryUsesPrior(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	tests := []struct {
		name     string
		purpose  models.Purpose
		expected models.PreferenceVector
	}{
		{"business prior", models.PurposeBusiness, models.PreferenceVector{0.1, 0.9, 0.8, 0.9, 0.3}},
		{"date prior", models.PurposeDate, models.PreferenceVector{0.3, 0.7, 0.9, 0.6, 0.5}},
		// Study prior clamps: 0.95 -> 0.9, 0.0 -> 0.1.
		{"study prior clamped", models.PurposeStudy, models.PreferenceVector{0.8, 0.3, 0.2, 0.9, 0.1}},
		{"meal neutral", models.PurposeMeal, models.NeutralVector()},
		{"drinking neutral", models.PurposeDrinking, models.NeutralVector()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := p.DeriveVector(nil, tt.purpose)
			if got != tt.expected {
				t.Errorf("DeriveVector(nil, %s) = %v, want %v", tt.purpose, got, tt.expected)
			}
		})
	}
}

func TestDeriveVectorHistoryAdjustments(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	history := []models.Venue{
		{Name: "Wine Cellar", PriceLevel: 5, Tags: []string{"wine", "ambiance", "alcohol"}},
	}

	got := p.DeriveVector(history, models.PurposeDate)

	want := models.PreferenceVector{0.35, 0.5, 0.7, 0.5, 0.8}
	if !vectorsClose(got, want) {
		t.Errorf("DeriveVector = %v, want %v", got, want)
	}
}

func TestDeriveVectorIgnoresIrrelevantVisits(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	// A pub visit is not evidence for a study meetup, so the prior applies.
	history := []models.Venue{
		{Name: "Loud Pub", PriceLevel: 2, Tags: []string{"alcohol", "loud"}},
	}

	got := p.DeriveVector(history, models.PurposeStudy)
	want := models.PreferenceVector{0.8, 0.3, 0.2, 0.9, 0.1}
	if got != want {
		t.Errorf("DeriveVector = %v, want study prior %v", got, want)
	}
}

func TestDeriveVectorMealAcceptsAllVisits(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	history := []models.Venue{
		{Name: "Cheap Eats", PriceLevel: 1, Tags: []string{"snack"}},
	}

	got := p.DeriveVector(history, models.PurposeMeal)
	want := models.PreferenceVector{0.65, 0.5, 0.5, 0.5, 0.5}
	if !vectorsClose(got, want) {
		t.Errorf("DeriveVector = %v, want %v", got, want)
	}
}

func TestDeriveVectorAlwaysBounded(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	// Many expensive ambiance venues push several dimensions past the caps.
	history := make([]models.Venue, 10)
	for i := range history {
		history[i] = models.Venue{
			Name:       "Fancy",
			PriceLevel: 5,
			Tags:       []string{"ambiance", "room", "alcohol", "wine"},
		}
	}

	for _, purpose := range models.Purposes() {
		got := p.DeriveVector(history, purpose)
		for dim, val := range got {
			if val < models.VectorMin || val > models.VectorMax {
				t.Errorf("%s dim %d = %f outside [%f, %f]",
					purpose, dim, val, models.VectorMin, models.VectorMax)
			}
		}
	}
}

func TestDeriveVectorDeterministic(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	history := []models.Venue{
		{Name: "A", PriceLevel: 4, Tags: []string{"ambiance", "wine"}},
		{Name: "B", PriceLevel: 2, Tags: []string{"pasta"}},
	}

	first := p.DeriveVector(history, models.PurposeDate)
	for i := 0; i < 5; i++ {
		if got := p.DeriveVector(history, models.PurposeDate); got != first {
			t.Fatalf("non-deterministic derivation: %v vs %v", got, first)
		}
	}
}

func TestGroupVectorIsMean(t *testing.T) {
	t.Parallel()

	p := NewProfiler()

	members := [][]models.Venue{
		nil, // business prior
		nil, // business prior
	}

	got := p.GroupVector(members, models.PurposeBusiness)
	want := models.PreferenceVector{0.1, 0.9, 0.8, 0.9, 0.3}
	if got != want {
		t.Errorf("GroupVector = %v, want %v", got, want)
	}

	if got := p.GroupVector(nil, models.PurposeMeal); got != models.NeutralVector() {
		t.Errorf("empty group should be neutral, got %v", got)
	}
}

func vectorsClose(a, b models.PreferenceVector) bool {
	const eps = 1e-9
	for i := range a {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}
