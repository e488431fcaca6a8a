// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package travel answers "how long to get from A to B by transit". The
// Oracle consults a durable cache, then a routing provider behind a circuit
// breaker and rate limiter, and falls back to a deterministic distance
// estimate when the provider cannot answer.
package travel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/models"
)

// RoutingProvider answers one best-path transit query.
type RoutingProvider interface {
	// TransitMinutes returns the door-to-door transit duration. Any error
	// means the provider could not answer; the caller decides what to do.
	TransitMinutes(ctx context.Context, origin, dest models.Location) (int, error)
}

// HTTPProvider queries an ODsay-style public transit path API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider creates a provider against the given base URL.
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// transitResponse is the subset of the provider response we read: the best
// path's total minutes.
type transitResponse struct {
	Result struct {
		Path []struct {
			Info struct {
				TotalTime int `json:"totalTime"`
			} `json:"info"`
		} `json:"path"`
	} `json:"result"`
}

// TransitMinutes implements RoutingProvider. A non-200 status or a body
// without at least one path is a failure.
func (p *HTTPProvider) TransitMinutes(ctx context.Context, origin, dest models.Location) (int, error) {
	query := url.Values{}
	query.Set("SX", strconv.FormatFloat(origin.Lng, 'f', -1, 64))
	query.Set("SY", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
	query.Set("EX", strconv.FormatFloat(dest.Lng, 'f', -1, 64))
	query.Set("EY", strconv.FormatFloat(dest.Lat, 'f', -1, 64))
	if p.apiKey != "" {
		query.Set("apiKey", p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build routing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("routing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("routing provider returned status %d", resp.StatusCode)
	}

	var body transitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode routing response: %w", err)
	}
	if len(body.Result.Path) == 0 {
		return 0, fmt.Errorf("routing response contained no path")
	}

	minutes := body.Result.Path[0].Info.TotalTime
	if minutes < 0 {
		return 0, fmt.Errorf("routing response contained negative duration %d", minutes)
	}
	return minutes, nil
}
