// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package venues retrieves and persists venue candidates. Results come from
// a local-search index with a persisted store in front; the analyzer
// normalizes free-text search results into the fixed category and tag
// vocabulary the recommendation pipeline understands.
package venues

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// defaultRating is assigned to provider results, which carry no rating of
// their own. Reviews refine it once the venue is persisted.
const defaultRating = 4.0

// coordScale converts the search index's fixed-point WGS84 coordinates.
const coordScale = 1e-7

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// Provider searches an external venue index.
type Provider interface {
	// Search runs the given queries and returns best-effort venue records
	// near the center. regionHint, when set, restricts results to
	// addresses mentioning it.
	Search(ctx context.Context, queries []string, regionHint string, center models.Location) ([]models.Venue, error)
}

// HTTPProvider is a Naver-style local-search client.
type HTTPProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	searchLimit  int
	client       *http.Client
	limiter      *rate.Limiter
}

// HTTPProviderOptions configures the search client.
type HTTPProviderOptions struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	Timeout       time.Duration
	SearchLimit   int
	RatePerSecond float64
	RateBurst     int
}

// NewHTTPProvider creates a local-search client.
func NewHTTPProvider(opts HTTPProviderOptions) *HTTPProvider {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 20
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 5
	}
	return &HTTPProvider{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		searchLimit:  opts.SearchLimit,
		client:       &http.Client{Timeout: opts.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.RateBurst),
	}
}

type searchItem struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	RoadAddress string `json:"roadAddress"`
	Address     string `json:"address"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

// Search runs every query against the index and merges the results,
// deduplicating by title. Individual query failures are logged and skipped;
// only context cancellation aborts the whole search.
func (p *HTTPProvider) Search(ctx context.Context, queries []string, regionHint string, center models.Location) ([]models.Venue, error) {
	if p.clientID == "" {
		return nil, nil
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	hint := strings.ToLower(strings.TrimSpace(regionHint))
	var out []models.Venue
	seenTitles := make(map[string]struct{})

	for _, query := range queries {
		if err := p.limiter.Wait(ctx); err != nil {
			return out, err
		}

		items, err := p.runQuery(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			metrics.VenueProviderErrors.Inc()
			logging.Debug().Err(err).Str("query", query).Msg("Venue search query failed")
			continue
		}

		for _, item := range items {
			title := strings.TrimSpace(htmlTagRe.ReplaceAllString(item.Title, ""))
			if title == "" {
				continue
			}
			if _, dup := seenTitles[title]; dup {
				continue
			}

			address := strings.TrimSpace(item.RoadAddress + " " + item.Address)
			if hint != "" && !strings.Contains(strings.ToLower(address), hint) {
				continue
			}

			attrs := AnalyzeAttributes(title, item.Category)
			if attrs.Category == models.CategoryJunk {
				continue
			}

			seenTitles[title] = struct{}{}
			out = append(out, models.Venue{
				Name:       title,
				Category:   attrs.Category,
				Tags:       attrs.Tags,
				PriceLevel: attrs.PriceLevel,
				Location:   itemLocation(item, center),
				Rating:     defaultRating,
				Address:    address,
			})
		}
	}

	return out, nil
}

func (p *HTTPProvider) runQuery(ctx context.Context, query string) ([]searchItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(p.searchLimit))
	params.Set("sort", "comment")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", p.clientID)
	req.Header.Set("X-Naver-Client-Secret", p.clientSecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("venue search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("venue search: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return body.Items, nil
}

// itemLocation parses the index's fixed-point coordinates, falling back to
// the search center when they are absent or malformed.
func itemLocation(item searchItem, center models.Location) models.Location {
	x, errX := strconv.ParseFloat(item.MapX, 64)
	y, errY := strconv.ParseFloat(item.MapY, 64)
	if errX != nil || errY != nil || x == 0 || y == 0 {
		return center
	}
	return models.Location{Lat: y * coordScale, Lng: x * coordScale}
}
