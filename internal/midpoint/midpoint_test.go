// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package midpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/stores"
	"github.com/agoraplan/agora/internal/travel"
)

// distanceProvider answers with a deterministic distance-proportional
// duration, standing in for a real routing backend.
type distanceProvider struct{}

func (distanceProvider) TransitMinutes(_ context.Context, origin, dest models.Location) (int, error) {
	return int(geo.HaversineKm(origin, dest)*3) + 5, nil
}

func testOptimizer(t *testing.T) *Optimizer {
	t.Helper()

	db, err := stores.Open(stores.Options{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	oracle := travel.NewOracle(distanceProvider{}, stores.NewTravelCache(db, 0), time.Second)
	return NewOptimizer(oracle, DefaultConfig())
}

func TestRecommendNoParticipants(t *testing.T) {
	regions, err := testOptimizer(t).Recommend(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("expected single default region, got %d", len(regions))
	}
	if regions[0].Name != defaultRegionName {
		t.Errorf("expected %q, got %q", defaultRegionName, regions[0].Name)
	}
	if len(regions[0].Transit) != 0 {
		t.Errorf("no participants means no transit breakdown, got %d entries", len(regions[0].Transit))
	}
}

func TestRecommendSingleParticipant(t *testing.T) {
	regions, err := testOptimizer(t).Recommend(context.Background(), []models.Participant{
		{Name: "solo", Location: models.Location{Lat: 37.498085, Lng: 127.027621}},
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(regions) != 1 || regions[0].Name != defaultRegionName {
		t.Fatalf("expected only the default region, got %+v", regions)
	}
	if len(regions[0].Transit) != 1 {
		t.Fatalf("expected one transit entry, got %d", len(regions[0].Transit))
	}
	if regions[0].Transit[0].Minutes <= 0 {
		t.Errorf("expected a positive travel time, got %d", regions[0].Transit[0].Minutes)
	}
}

func TestRecommendThreeDistinctRegions(t *testing.T) {
	participants := []models.Participant{
		{UserID: 1, Name: "south", Location: models.Location{Lat: 37.498085, Lng: 127.027621}},
		{UserID: 2, Name: "west", Location: models.Location{Lat: 37.557527, Lng: 126.924467}},
		{UserID: 3, Name: "east", Location: models.Location{Lat: 37.540693, Lng: 127.070230}},
	}

	regions, err := testOptimizer(t).Recommend(context.Background(), participants)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(regions) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(regions))
	}

	seen := map[string]bool{}
	for _, r := range regions {
		if seen[r.Name] {
			t.Errorf("duplicate region %q", r.Name)
		}
		seen[r.Name] = true

		if len(r.Transit) != len(participants) {
			t.Errorf("region %q has %d transit entries, want %d", r.Name, len(r.Transit), len(participants))
		}
		if r.AvgMinutes <= 0 {
			t.Errorf("region %q has no average travel time", r.Name)
		}
	}

	if regions[0].Score > regions[1].Score {
		t.Errorf("fairness winners out of order: %.2f then %.2f", regions[0].Score, regions[1].Score)
	}
}

func TestRecommendObservesCandidateCount(t *testing.T) {
	before := histogramSampleCount(t, metrics.MidpointCandidatesEvaluated)

	_, err := testOptimizer(t).Recommend(context.Background(), []models.Participant{
		{UserID: 1, Location: models.Location{Lat: 37.498085, Lng: 127.027621}},
		{UserID: 2, Location: models.Location{Lat: 37.557527, Lng: 126.924467}},
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	after := histogramSampleCount(t, metrics.MidpointCandidatesEvaluated)
	if after != before+1 {
		t.Errorf("expected one candidate-count observation, got %d -> %d", before, after)
	}
}

func histogramSampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()

	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestScoreRegionPenalizesSpread(t *testing.T) {
	t.Parallel()

	balanced := models.Region{Transit: []models.ParticipantTransit{
		{Minutes: 30}, {Minutes: 30}, {Minutes: 30},
	}}
	skewed := models.Region{Transit: []models.ParticipantTransit{
		{Minutes: 10}, {Minutes: 30}, {Minutes: 50},
	}}

	scoreRegion(&balanced, 2.0)
	scoreRegion(&skewed, 2.0)

	if balanced.AvgMinutes != 30 || skewed.AvgMinutes != 30 {
		t.Fatalf("means differ: %d vs %d", balanced.AvgMinutes, skewed.AvgMinutes)
	}
	if skewed.Score <= balanced.Score {
		t.Errorf("equal means but the skewed region should score worse: %.2f vs %.2f",
			skewed.Score, balanced.Score)
	}
	if want := 30.0 + 2.0*40.0; skewed.Score != want {
		t.Errorf("expected skewed score %.1f, got %.2f", want, skewed.Score)
	}
}

func TestNearestHotspot(t *testing.T) {
	t.Parallel()

	// A point a few hundred meters from Gangnam station.
	got := NearestHotspot(models.Location{Lat: 37.4990, Lng: 127.0280})
	if got.Name != "Gangnam" {
		t.Errorf("expected Gangnam, got %q", got.Name)
	}
}

func TestSearchHotspots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  int
	}{
		{"gangnam", 1},
		{"GANGNAM", 1},
		{"station", 2},
		{"  jamsil  ", 1},
		{"nowhere", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := SearchHotspots(tt.query); len(got) != tt.want {
			t.Errorf("SearchHotspots(%q) returned %d results, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestDefaultRegionInCatalogue(t *testing.T) {
	t.Parallel()

	def := DefaultRegion()
	if def.Name != defaultRegionName {
		t.Fatalf("expected %q, got %q", defaultRegionName, def.Name)
	}
	if def.Location.Lat == 0 || def.Location.Lng == 0 {
		t.Error("default region has no coordinates")
	}
}

func TestLoadCatalogue(t *testing.T) {
	orig := hotspots
	defer func() { hotspots = orig }()

	path := filepath.Join(t.TempDir(), "hubs.json")
	content := `[{"name":"Central","location":{"lat":35.0,"lng":129.0},"lines":["1"]}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}

	if err := LoadCatalogue(path); err != nil {
		t.Fatalf("LoadCatalogue failed: %v", err)
	}
	if len(Hotspots()) != 1 || Hotspots()[0].Name != "Central" {
		t.Fatalf("catalogue not replaced: %+v", Hotspots())
	}

	if err := LoadCatalogue(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`[]`), 0o600); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}
	if err := LoadCatalogue(empty); err == nil {
		t.Error("expected error for empty catalogue")
	}
}
