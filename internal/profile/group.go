// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package profile

import (
	"strings"

	"github.com/agoraplan/agora/internal/models"
)

// explicitTagWeight is the indicator weight an explicitly picked preference
// tag contributes to the group profile, on top of any learned weight.
const explicitTagWeight = 3.0

// BuildGroupProfile aggregates preference records into a single tag-weight
// map for a meeting: every member's explicit tags contribute a fixed
// indicator weight, learned weights sum as-is. Used by the additive scoring
// strategy.
func BuildGroupProfile(records []models.PreferenceRecord) models.GroupProfile {
	weights := make(map[string]float64)

	for i := range records {
		record := &records[i]
		for _, tag := range record.ExplicitTags() {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			weights[tag] += explicitTagWeight
		}
		for tag, w := range record.TagWeights {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			weights[tag] += w
		}
	}

	return models.GroupProfile{TagWeights: weights}
}
