// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package midpoint picks fair meeting regions for a group. Candidates come
// from a fixed catalogue of transit hubs; each is scored by the group's
// travel-time distribution so the winner minimizes both the average commute
// and the gap between the best- and worst-off participant.
package midpoint

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/logging"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
	"github.com/agoraplan/agora/internal/travel"
)

// regionCount is how many regions a recommendation carries. The first two
// are fairness winners; the third is the geographic-diversity pick.
const regionCount = 3

// Config tunes candidate selection and scoring.
type Config struct {
	// CandidateCount is how many centroid-nearest hotspots get real
	// travel-time evaluation.
	CandidateCount int

	// FanoutConcurrency bounds concurrent oracle lookups.
	FanoutConcurrency int

	// EquityWeight scales the max-min spread penalty.
	EquityWeight float64
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		CandidateCount:    7,
		FanoutConcurrency: 8,
		EquityWeight:      2.0,
	}
}

// Optimizer finds meeting regions that are fair to every participant.
type Optimizer struct {
	oracle *travel.Oracle
	cfg    Config
}

// NewOptimizer builds an optimizer on the given travel oracle.
func NewOptimizer(oracle *travel.Oracle, cfg Config) *Optimizer {
	if cfg.CandidateCount <= 0 {
		cfg.CandidateCount = DefaultConfig().CandidateCount
	}
	if cfg.FanoutConcurrency <= 0 {
		cfg.FanoutConcurrency = DefaultConfig().FanoutConcurrency
	}
	return &Optimizer{oracle: oracle, cfg: cfg}
}

// Recommend returns up to three ranked meeting regions for the group.
// Fewer than two participants cannot define a midpoint, so the fixed
// default region is returned instead.
func (o *Optimizer) Recommend(ctx context.Context, participants []models.Participant) ([]models.Region, error) {
	if len(participants) < 2 {
		return o.defaultRecommendation(ctx, participants), nil
	}

	points := make([]models.Location, len(participants))
	for i, p := range participants {
		points[i] = p.Location
	}
	centroid := geo.Centroid(points)

	candidates := o.nearestCandidates(centroid)
	scored, err := o.evaluate(ctx, candidates, participants)
	if err != nil {
		return nil, err
	}
	metrics.MidpointCandidatesEvaluated.Observe(float64(len(scored)))

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score < scored[j].Score
		}
		return scored[i].Name < scored[j].Name
	})

	regions := make([]models.Region, 0, regionCount)
	for _, r := range scored {
		if len(regions) == regionCount-1 {
			break
		}
		regions = append(regions, r)
	}

	// The last slot goes to the hotspot nearest the centroid unless it
	// already won on fairness.
	central := NearestHotspot(centroid)
	if r, ok := findRegion(scored, central.Name); ok && !containsRegion(regions, central.Name) {
		r.Central = true
		regions = append(regions, r)
	} else {
		for _, r := range scored {
			if len(regions) == regionCount {
				break
			}
			if !containsRegion(regions, r.Name) {
				regions = append(regions, r)
			}
		}
	}

	return regions, nil
}

// nearestCandidates picks the catalogue hubs closest to the centroid.
func (o *Optimizer) nearestCandidates(centroid models.Location) []models.Hotspot {
	all := Hotspots()
	sort.Slice(all, func(i, j int) bool {
		di := geo.SquaredDegrees(centroid, all[i].Location)
		dj := geo.SquaredDegrees(centroid, all[j].Location)
		if di != dj {
			return di < dj
		}
		return all[i].Name < all[j].Name
	})

	n := o.cfg.CandidateCount
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// evaluate resolves travel times for every candidate-participant pair and
// scores each candidate. Oracle lookups run concurrently but bounded.
func (o *Optimizer) evaluate(ctx context.Context, candidates []models.Hotspot, participants []models.Participant) ([]models.Region, error) {
	regions := make([]models.Region, len(candidates))
	for i, c := range candidates {
		regions[i] = models.Region{
			Name:     c.Name,
			Location: c.Location,
			Transit:  make([]models.ParticipantTransit, len(participants)),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.FanoutConcurrency)

	for i := range candidates {
		for j := range participants {
			i, j := i, j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				p := participants[j]
				minutes, estimated := o.oracle.Minutes(gctx, p.Location, candidates[i].Location)
				regions[i].Transit[j] = models.ParticipantTransit{
					UserID:    p.UserID,
					Name:      p.Name,
					Minutes:   minutes,
					Estimated: estimated,
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range regions {
		scoreRegion(&regions[i], o.cfg.EquityWeight)
	}
	return regions, nil
}

// scoreRegion computes the fairness cost from the transit breakdown:
// mean travel time plus the weighted max-min spread.
func scoreRegion(r *models.Region, equityWeight float64) {
	if len(r.Transit) == 0 {
		return
	}

	sum := 0
	min, max := math.MaxInt, 0
	for _, t := range r.Transit {
		sum += t.Minutes
		if t.Minutes < min {
			min = t.Minutes
		}
		if t.Minutes > max {
			max = t.Minutes
		}
	}

	mean := float64(sum) / float64(len(r.Transit))
	r.AvgMinutes = int(math.Round(mean))
	r.Score = mean + equityWeight*float64(max-min)
}

// defaultRecommendation handles the degenerate group sizes.
func (o *Optimizer) defaultRecommendation(ctx context.Context, participants []models.Participant) []models.Region {
	def := DefaultRegion()
	region := models.Region{Name: def.Name, Location: def.Location}

	if len(participants) == 1 {
		p := participants[0]
		minutes, estimated := o.oracle.Minutes(ctx, p.Location, def.Location)
		region.Transit = []models.ParticipantTransit{{
			UserID:    p.UserID,
			Name:      p.Name,
			Minutes:   minutes,
			Estimated: estimated,
		}}
		region.AvgMinutes = minutes
	}

	logging.Debug().
		Int("participants", len(participants)).
		Str("region", def.Name).
		Msg("too few participants for a midpoint, using default region")
	return []models.Region{region}
}

func findRegion(regions []models.Region, name string) (models.Region, bool) {
	for _, r := range regions {
		if r.Name == name {
			return r, true
		}
	}
	return models.Region{}, false
}

func containsRegion(regions []models.Region, name string) bool {
	_, ok := findRegion(regions, name)
	return ok
}
