// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package travel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/stores"
)

// fakeProvider answers from a fixed table or fails.
type fakeProvider struct {
	minutes int
	err     error
	calls   int
}

func (f *fakeProvider) TransitMinutes(_ context.Context, _, _ models.Location) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.minutes, nil
}

func testCache(t *testing.T) *stores.TravelCache {
	t.Helper()

	db, err := stores.Open(stores.Options{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return stores.NewTravelCache(db, 0)
}

func TestOracleProviderSuccessCachesOnce(t *testing.T) {
	provider := &fakeProvider{minutes: 42}
	oracle := NewOracle(provider, testCache(t), time.Second)
	ctx := context.Background()

	a := models.Location{Lat: 37.5, Lng: 127.0}
	b := models.Location{Lat: 37.55, Lng: 127.05}

	minutes, estimated := oracle.Minutes(ctx, a, b)
	if minutes != 42 || estimated {
		t.Fatalf("expected provider answer 42, got %d (estimated=%v)", minutes, estimated)
	}

	// Second lookup hits the cache; the provider is not consulted again.
	minutes, estimated = oracle.Minutes(ctx, a, b)
	if minutes != 42 || estimated {
		t.Fatalf("expected cached answer 42, got %d (estimated=%v)", minutes, estimated)
	}
	if provider.calls != 1 {
		t.Errorf("expected exactly one provider call, got %d", provider.calls)
	}
}

func TestOracleFallbackFormula(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	cache := testCache(t)
	oracle := NewOracle(provider, cache, time.Second)
	ctx := context.Background()

	a := models.Location{Lat: 37.4979, Lng: 127.0276}
	b := models.Location{Lat: 37.5563, Lng: 126.9220}

	minutes, estimated := oracle.Minutes(ctx, a, b)
	if !estimated {
		t.Fatal("expected estimated answer when provider fails")
	}

	want := int(geo.HaversineKm(a, b)*2) + 15
	if minutes != want {
		t.Errorf("expected fallback %d, got %d", want, minutes)
	}

	// Fallback answers are never persisted.
	if _, found, err := cache.Get(ctx, a, b); err != nil || found {
		t.Errorf("expected no cache entry after fallback, found=%v err=%v", found, err)
	}
}

func TestOracleNilProvider(t *testing.T) {
	oracle := NewOracle(nil, testCache(t), time.Second)

	a := models.Location{Lat: 37.5, Lng: 127.0}
	b := models.Location{Lat: 37.51, Lng: 127.01}

	minutes, estimated := oracle.Minutes(context.Background(), a, b)
	if !estimated {
		t.Error("expected estimate with no provider configured")
	}
	if minutes < 15 {
		t.Errorf("fallback includes the transfer penalty, got %d", minutes)
	}
}

func TestFallbackMinutesDeterministic(t *testing.T) {
	t.Parallel()

	a := models.Location{Lat: 37.5, Lng: 127.0}
	b := models.Location{Lat: 37.6, Lng: 127.1}

	first := FallbackMinutes(a, b)
	for i := 0; i < 3; i++ {
		if got := FallbackMinutes(a, b); got != first {
			t.Fatalf("fallback not deterministic: %d vs %d", got, first)
		}
	}

	if got := FallbackMinutes(a, a); got != 15 {
		t.Errorf("zero distance should cost exactly the transfer penalty, got %d", got)
	}
}

func TestHTTPProviderParsesBestPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("SX") == "" || r.URL.Query().Get("EY") == "" {
			http.Error(w, "missing params", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"path":[{"info":{"totalTime":37}},{"info":{"totalTime":55}}]}}`))
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, "test-key", time.Second)

	minutes, err := p.TransitMinutes(context.Background(),
		models.Location{Lat: 37.5, Lng: 127.0}, models.Location{Lat: 37.6, Lng: 127.1})
	if err != nil {
		t.Fatalf("TransitMinutes failed: %v", err)
	}
	if minutes != 37 {
		t.Errorf("expected best path 37, got %d", minutes)
	}
}

func TestHTTPProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "upstream error", http.StatusBadGateway)
		}},
		{"no paths", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"result":{"path":[]}}`))
		}},
		{"invalid body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}},
		{"negative duration", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"result":{"path":[{"info":{"totalTime":-5}}]}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			p := NewHTTPProvider(server.URL, "", time.Second)
			if _, err := p.TransitMinutes(context.Background(),
				models.Location{Lat: 37.5, Lng: 127.0}, models.Location{Lat: 37.6, Lng: 127.1}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResilientProviderOpensBreaker(t *testing.T) {
	failing := &fakeProvider{err: errors.New("down")}

	rp := NewResilientProvider(failing, BreakerSettings{
		MaxRequests:   1,
		Interval:      time.Minute,
		Timeout:       time.Minute,
		MinRequests:   3,
		FailureRate:   0.6,
		RatePerSecond: 1000,
		RateBurst:     1000,
	})

	ctx := context.Background()
	a := models.Location{Lat: 37.5, Lng: 127.0}
	b := models.Location{Lat: 37.6, Lng: 127.1}

	for i := 0; i < 5; i++ {
		_, _ = rp.TransitMinutes(ctx, a, b)
	}

	before := failing.calls
	if _, err := rp.TransitMinutes(ctx, a, b); err == nil {
		t.Error("expected breaker to reject")
	}
	if failing.calls != before {
		t.Errorf("open breaker should not reach the provider, calls went %d -> %d", before, failing.calls)
	}
}
