// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package geo

import (
	"math"
	"testing"

	"github.com/agoraplan/agora/internal/models"
)

var (
	gangnam = models.Location{Lat: 37.498085, Lng: 127.027621}
	hongdae = models.Location{Lat: 37.557527, Lng: 126.924467}
)

func TestHaversineMeters(t *testing.T) {
	t.Parallel()

	// Gangnam to Hongdae is roughly 11.2 km.
	got := HaversineMeters(gangnam, hongdae)
	if got < 10500 || got > 12500 {
		t.Errorf("HaversineMeters = %.0f, want roughly 11200", got)
	}

	if d := HaversineMeters(gangnam, gangnam); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}

	// Symmetric.
	if a, b := HaversineMeters(gangnam, hongdae), HaversineMeters(hongdae, gangnam); math.Abs(a-b) > 1e-6 {
		t.Errorf("asymmetric distance: %v vs %v", a, b)
	}
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	c := Centroid([]models.Location{
		{Lat: 37.50, Lng: 127.03},
		{Lat: 37.55, Lng: 126.92},
	})
	if math.Abs(c.Lat-37.525) > 1e-9 || math.Abs(c.Lng-126.975) > 1e-9 {
		t.Errorf("Centroid = %+v, want {37.525 126.975}", c)
	}

	if c := Centroid(nil); c != (models.Location{}) {
		t.Errorf("Centroid(nil) = %+v, want zero", c)
	}
}

func TestSquaredDegreesOrdering(t *testing.T) {
	t.Parallel()

	origin := models.Location{Lat: 37.5, Lng: 127.0}
	near := models.Location{Lat: 37.51, Lng: 127.0}
	far := models.Location{Lat: 37.6, Lng: 127.1}

	if SquaredDegrees(origin, near) >= SquaredDegrees(origin, far) {
		t.Error("nearer point should have smaller squared distance")
	}
}

func TestGridDedupeRadius(t *testing.T) {
	t.Parallel()

	grid := NewGrid(50)

	grid.Insert("a", gangnam, "original")

	// ~20 m north of the original: same place for dedupe purposes.
	nearby := models.Location{Lat: gangnam.Lat + 0.00018, Lng: gangnam.Lng}
	hits := grid.QueryNearby(nearby, 50)
	if len(hits) != 1 {
		t.Fatalf("QueryNearby within 50m = %d entries, want 1", len(hits))
	}
	if hits[0].ID != "a" {
		t.Errorf("hit ID = %q, want %q", hits[0].ID, "a")
	}

	// ~500 m away: distinct place.
	distant := models.Location{Lat: gangnam.Lat + 0.0045, Lng: gangnam.Lng}
	if hits := grid.QueryNearby(distant, 50); len(hits) != 0 {
		t.Errorf("QueryNearby far away = %d entries, want 0", len(hits))
	}
}

func TestGridInsertReplacesAndRemoves(t *testing.T) {
	t.Parallel()

	grid := NewGrid(50)
	grid.Insert("v", gangnam, 1)
	grid.Insert("v", hongdae, 2)

	if grid.Size() != 1 {
		t.Errorf("Size after replace = %d, want 1", grid.Size())
	}
	if hits := grid.QueryNearby(hongdae, 50); len(hits) != 1 || hits[0].Data != 2 {
		t.Errorf("replaced entry not found at new location: %+v", hits)
	}
	if hits := grid.QueryNearby(gangnam, 50); len(hits) != 0 {
		t.Errorf("stale entry still at old location: %+v", hits)
	}

	if !grid.Remove("v") {
		t.Error("Remove existing = false, want true")
	}
	if grid.Remove("v") {
		t.Error("Remove missing = true, want false")
	}
	if grid.Size() != 0 {
		t.Errorf("Size after remove = %d, want 0", grid.Size())
	}
}
