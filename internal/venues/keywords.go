// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package venues

import (
	"strings"

	"github.com/agoraplan/agora/internal/models"
)

// maxExpansionsPerTag caps how many search keywords one user tag expands to.
const maxExpansionsPerTag = 5

// maxQueries caps the number of search-index calls per request.
const maxQueries = 20

// tagKeywordExpansions turns a user preference tag into search-index query
// keywords. The tag itself is always appended as a query too.
var tagKeywordExpansions = map[string][]string{
	"korean":  {"korean restaurant", "hansik", "galbi", "bulgogi", "bossam"},
	"western": {"pasta", "steak", "brunch", "italian restaurant"},
	"quiet":   {"private room restaurant", "quiet cafe", "calm restaurant"},
	"room":    {"private room restaurant", "room dining", "private dining"},
	"alcohol": {"izakaya", "wine bar", "whisky bar", "craft beer"},
	"cafe":    {"cafe", "roastery cafe", "dessert cafe", "large cafe"},
	"meeting": {"meeting room", "seminar room", "coworking space", "business center"},
	"culture": {"gallery", "museum", "exhibition", "theater"},
	"view":    {"rooftop", "city view restaurant", "river view cafe"},
	"value":   {"budget eats", "good value restaurant"},
	"upscale": {"fine dining", "hotel restaurant", "omakase"},
	"dessert": {"dessert cafe", "bakery", "patisserie"},
}

// purposeBaseKeywords supplies the default queries when the user gave no
// explicit tags.
var purposeBaseKeywords = map[models.Purpose][]string{
	models.PurposeMeal:     {"restaurant", "local favorites"},
	models.PurposeBusiness: {"private room restaurant", "hotel dining", "quiet restaurant"},
	models.PurposeDate:     {"pasta", "wine bar", "atmospheric restaurant"},
	models.PurposeStudy:    {"study cafe", "quiet cafe", "coworking space"},
	models.PurposeDrinking: {"izakaya", "pub", "wine bar"},
	models.PurposeCafe:     {"cafe", "dessert cafe", "roastery cafe"},
}

// midpointPlaceholders are region names that mean "no concrete region yet"
// and must not be prefixed onto queries.
var midpointPlaceholders = map[string]struct{}{
	"":         {},
	"nearby":   {},
	"midpoint": {},
}

// ExpandKeywords builds the ordered, deduplicated search query list for a
// purpose and optional explicit tags, prefixing each query with the region
// name when one is known.
func ExpandKeywords(purpose models.Purpose, userTags []string, regionName string) []string {
	var base []string
	if len(userTags) > 0 {
		for _, tag := range userTags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			if exp, ok := tagKeywordExpansions[tag]; ok {
				n := len(exp)
				if n > maxExpansionsPerTag {
					n = maxExpansionsPerTag
				}
				base = append(base, exp[:n]...)
			}
			base = append(base, tag)
		}
	} else {
		base = purposeBaseKeywords[purpose]
		if len(base) == 0 {
			base = purposeBaseKeywords[models.PurposeMeal]
		}
	}

	region := cleanRegionName(regionName)
	queries := make([]string, 0, len(base))
	seen := make(map[string]struct{}, len(base))
	for _, kw := range base {
		q := kw
		if region != "" {
			q = region + " " + kw
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
		if len(queries) == maxQueries {
			break
		}
	}
	return queries
}

// cleanRegionName strips parenthetical qualifiers ("Samseong (COEX)" ->
// "Samseong") and rejects placeholder names.
func cleanRegionName(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if _, placeholder := midpointPlaceholders[strings.ToLower(name)]; placeholder {
		return ""
	}
	return name
}
