// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package venues

import (
	"strings"

	"github.com/agoraplan/agora/internal/models"
)

// Attribute analysis keyword tables. Search-index categories are free text,
// so classification works by containment over the combined title+category
// string. Order matters: space type first, then restaurant tiers.
var (
	workspaceKeywords  = []string{"meeting room", "study room", "coworking", "shared office", "workspace", "seminar", "rental space"}
	cafeKeywords       = []string{"cafe", "coffee", "roastery", "espresso"}
	cultureKeywords    = []string{"park", "gallery", "museum", "exhibition", "theater", "festival"}
	fineDiningKeywords = []string{"omakase", "tasting course", "fine dining", "hotel dining", "kaiseki", "premium"}
	barKeywords        = []string{"izakaya", "pub", "pocha", "beer", "wine bar", "whisky", "cocktail"}

	junkKeywords = []string{"hospital", "pharmacy", "clinic", "law office", "tax office", "parking", "atm", "real estate"}

	// detailTags maps text cues to the tag vocabulary the filter and the
	// scorers match against.
	detailTags = []struct {
		cues []string
		tag  string
	}{
		{[]string{"korean set", "home-style", "banchan"}, "korean"},
		{[]string{"pasta", "steak", "italian", "brunch"}, "western"},
		{[]string{"private room", "room available"}, "room"},
		{[]string{"budget", "cheap", "great value"}, "value"},
		{[]string{"quiet", "calm"}, "quiet"},
		{[]string{"old-school", "long-established"}, "retro"},
		{[]string{"view", "skyline", "rooftop"}, "view"},
		{[]string{"instagram", "photogenic", "aesthetic"}, "ambiance"},
	}

	budgetFoodKeywords = []string{"gukbap", "bunsik", "udon", "noodle house"}
)

// Attributes is the analyzer output for one search result.
type Attributes struct {
	Category   models.Category
	Tags       []string
	PriceLevel int
}

// AnalyzeAttributes derives a normalized category, tag set, and price level
// from a result's title and raw category text. Junk records (pharmacies,
// offices, parking lots) come back with CategoryJunk and must be dropped.
func AnalyzeAttributes(title, rawCategory string) Attributes {
	text := strings.ToLower(title + " " + strings.ReplaceAll(rawCategory, ">", " "))

	attrs := Attributes{Category: models.CategoryRestaurant, PriceLevel: 3}

	switch {
	case containsAny(text, workspaceKeywords):
		attrs.Category = models.CategoryWorkspace
		attrs.Tags = append(attrs.Tags, "meeting")
	case containsAny(text, cafeKeywords):
		attrs.Category = models.CategoryCafe
		attrs.Tags = append(attrs.Tags, "cafe")
	case containsAny(text, cultureKeywords):
		attrs.Category = models.CategoryPlace
		attrs.Tags = append(attrs.Tags, "stroll")
	case containsAny(text, fineDiningKeywords):
		attrs.Category = models.CategoryFineDining
		attrs.Tags = append(attrs.Tags, "upscale")
		attrs.PriceLevel = 5
	case containsAny(text, barKeywords):
		attrs.Category = models.CategoryIzakaya
		attrs.Tags = append(attrs.Tags, "alcohol")
		attrs.PriceLevel = 4
	}

	for _, d := range detailTags {
		if containsAny(text, d.cues) {
			attrs.Tags = appendUnique(attrs.Tags, d.tag)
			if d.tag == "value" {
				attrs.PriceLevel = 1
			}
		}
	}

	if containsAny(text, budgetFoodKeywords) {
		attrs.PriceLevel = 1
	}
	if containsAny(text, junkKeywords) {
		attrs.Category = models.CategoryJunk
	}

	return attrs
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
