// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/agoraplan/agora/internal/models"
)

// Matcher surfaces venues from past meetings that resembled the one being
// planned: same purpose, overlapping region, similar tags, similar group
// size, weighted by how satisfied the group was.
type Matcher struct {
	cfg *Config
}

// NewMatcher creates a history matcher.
func NewMatcher(cfg *Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Matches scans history records and returns the most similar past venues,
// best-first, at most Similarity.TopN. Records with malformed tag data are
// skipped rather than failing the whole scan.
func (m *Matcher) Matches(history []models.MeetingHistoryRecord, purpose models.Purpose,
	tags []string, regionName string, groupSize int) []models.HistoryMatch {

	want := tagSet(tags)
	region := strings.ToLower(strings.TrimSpace(regionName))

	best := make(map[string]models.HistoryMatch)
	for i := range history {
		rec := &history[i]

		if rec.Purpose != purpose || rec.VenueName == "" {
			continue
		}
		if region != "" && !regionContains(rec.RegionName, region) {
			continue
		}

		sim := m.similarity(want, tagSet(rec.Tags), groupSize, rec.ParticipantCount)
		if sim <= m.cfg.Similarity.MinSimilarity {
			continue
		}

		match := models.HistoryMatch{
			VenueName:  rec.VenueName,
			Category:   rec.VenueCategory,
			Similarity: sim,
			Score:      sim * rec.Satisfaction,
		}

		// Dedupe by venue name keeping the best score.
		if prev, ok := best[rec.VenueName]; !ok || match.Score > prev.Score {
			best[rec.VenueName] = match
		}
	}

	out := make([]models.HistoryMatch, 0, len(best))
	for _, match := range best {
		out = append(out, match)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].VenueName < out[j].VenueName
	})

	if len(out) > m.cfg.Similarity.TopN {
		out = out[:m.cfg.Similarity.TopN]
	}
	return out
}

// similarity blends Jaccard tag overlap with group-size closeness.
func (m *Matcher) similarity(want, have map[string]struct{}, wantSize, haveSize int) float64 {
	tagSim := jaccard(want, have)
	sizeDiff := math.Abs(float64(wantSize - haveSize))
	sizeSim := 1.0 / (1.0 + m.cfg.Similarity.SizeDecay*sizeDiff)
	return m.cfg.Similarity.TagWeight*tagSim + m.cfg.Similarity.SizeWeight*sizeSim
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	inter := 0
	for tag := range a {
		if _, ok := b[tag]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tagSet(tags []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

// regionContains matches region names loosely in both directions, so
// "Gangnam" matches a record stored as "Gangnam Station".
func regionContains(recorded, want string) bool {
	recorded = strings.ToLower(strings.TrimSpace(recorded))
	if recorded == "" {
		return false
	}
	return strings.Contains(recorded, want) || strings.Contains(want, recorded)
}
