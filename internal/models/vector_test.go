// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import (
	"math"
	"strings"
	"testing"
)

func TestVectorClamp(t *testing.T) {
	t.Parallel()

	v := PreferenceVector{-0.5, 0.05, 0.5, 0.95, 1.5}
	got := v.Clamp()
	want := PreferenceVector{0.1, 0.1, 0.5, 0.9, 0.9}
	if got != want {
		t.Errorf("Clamp() = %v, want %v", got, want)
	}

	// Original is untouched.
	if v[0] != -0.5 {
		t.Errorf("Clamp mutated receiver: %v", v)
	}
}

func TestVectorDot(t *testing.T) {
	t.Parallel()

	a := PreferenceVector{1, 2, 3, 4, 5}
	b := PreferenceVector{5, 4, 3, 2, 1}
	if got := a.Dot(b); got != 35 {
		t.Errorf("Dot = %v, want 35", got)
	}
}

func TestMeanVectors(t *testing.T) {
	t.Parallel()

	got := MeanVectors([]PreferenceVector{
		{0.2, 0.4, 0.6, 0.8, 0.2},
		{0.4, 0.6, 0.8, 0.2, 0.4},
	})
	want := PreferenceVector{0.3, 0.5, 0.7, 0.5, 0.3}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("MeanVectors[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := MeanVectors(nil); got != NeutralVector() {
		t.Errorf("MeanVectors(nil) = %v, want neutral", got)
	}
}

func TestVenueSearchText(t *testing.T) {
	t.Parallel()

	v := Venue{
		Name:     "Moonlight Wine Bar",
		Category: CategoryBar,
		Tags:     []string{"Wine", "ambiance"},
	}
	text := v.SearchText()
	for _, want := range []string{"moonlight", "bar", "wine", "ambiance"} {
		if !strings.Contains(text, want) {
			t.Errorf("SearchText() = %q, missing %q", text, want)
		}
	}

	if !v.HasTag("WINE") {
		t.Error("HasTag should be case-insensitive")
	}
	if v.HasTag("quiet") {
		t.Error("HasTag reported a missing tag")
	}
	if !v.HasAnyTag("quiet", "ambiance") {
		t.Error("HasAnyTag should match ambiance")
	}
}
