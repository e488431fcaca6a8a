// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package recommend

import (
	"strings"

	"github.com/agoraplan/agora/internal/models"
)

// categoryWhitelists restricts candidates per purpose. A purpose without an
// entry (or with an empty list) accepts every category.
var categoryWhitelists = map[models.Purpose][]models.Category{
	models.PurposeBusiness: {
		models.CategoryWorkspace, models.CategoryFineDining, models.CategoryHotel,
		models.CategoryCafe, models.CategoryRestaurant, models.CategoryKorean,
		models.CategoryJapanese,
	},
	models.PurposeDate: {
		models.CategoryPlace, models.CategoryFineDining, models.CategoryIzakaya,
		models.CategoryBar, models.CategoryCafe, models.CategoryRestaurant,
		models.CategoryCulture, models.CategoryPark,
	},
	models.PurposeDrinking: {
		models.CategoryIzakaya, models.CategoryBar, models.CategoryPub,
		models.CategoryRestaurant, models.CategoryBBQ, models.CategoryPocha,
	},
	models.PurposeStudy: {
		models.CategoryCafe, models.CategoryWorkspace, models.CategoryLibrary,
		models.CategoryBakeryCafe,
	},
	models.PurposeMeal: {
		models.CategoryRestaurant, models.CategoryKorean, models.CategoryChinese,
		models.CategoryJapanese, models.CategoryWestern, models.CategorySnack,
		models.CategoryBBQ,
	},
	models.PurposeCafe: {
		models.CategoryCafe, models.CategoryBakeryCafe, models.CategoryDessert,
	},
}

// defaultFilterTags is the tag vocabulary applied when the user picked no
// filters of their own. Matching is substring containment against the
// venue's lowercased search text, so broad words catch compound tags too.
var defaultFilterTags = map[models.Purpose][]string{
	models.PurposeMeal: {
		"tasty", "restaurant", "diner",
		"korean", "chinese", "western", "japanese", "sushi",
		"pasta", "steak", "bbq", "pork", "beef", "rib", "grill",
		"noodle", "stew", "burger", "pizza", "mexican", "italian",
		"quiet", "casual", "view", "terrace",
	},
	models.PurposeDrinking: {
		"bar", "izakaya", "wine", "cocktail", "pub", "pocha",
		"highball", "beer", "soju", "whisky", "alcohol", "group",
	},
	models.PurposeCafe: {
		"cafe", "brunch", "dessert", "bakery", "cake",
		"specialty", "roastery", "coffee", "tea",
		"quiet", "cozy", "laptop",
	},
	models.PurposeStudy: {
		"study-cafe", "study-room", "study",
		"quiet", "quiet-work", "laptop", "wifi",
		"reading-room", "reservation",
	},
	models.PurposeBusiness: {
		"meeting-room", "seminar", "conference",
		"coworking", "workspace",
		"hotel-lounge", "lounge",
		"business", "presentation", "projector", "whiteboard", "parking",
	},
	models.PurposeDate: {
		"date", "anniversary", "proposal",
		"ambiance", "cozy", "view", "night-view", "rooftop", "terrace",
		"wine", "cocktail", "bar",
		"fine-dining", "course",
		"quiet",
	},
}

// purposeTagWeights gives the additive strategy a per-purpose base weight
// for directly relevant tags.
var purposeTagWeights = map[models.Purpose]map[string]float64{
	models.PurposeBusiness: {"quiet": 4.0, "room": 4.0, "meeting-room": 5.0, "workspace": 3.0},
	models.PurposeDate:     {"ambiance": 5.0, "view": 4.0, "wine": 3.0, "course": 3.0},
	models.PurposeStudy:    {"quiet": 5.0, "quiet-work": 5.0, "study": 4.0, "laptop": 3.0},
	models.PurposeDrinking: {"alcohol": 5.0, "pub": 3.0, "group": 3.0},
	models.PurposeMeal:     {"tasty": 4.0, "restaurant": 2.0},
	models.PurposeCafe:     {"cafe": 4.0, "dessert": 3.0, "coffee": 2.0},
}

// EffectiveTags returns the tag filter in force: the user's own tags when
// any were picked, otherwise the purpose's default vocabulary. Tags come
// back lowercased.
func EffectiveTags(purpose models.Purpose, userTags []string) []string {
	if len(userTags) > 0 {
		out := make([]string, 0, len(userTags))
		for _, t := range userTags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				out = append(out, t)
			}
		}
		return out
	}

	base := defaultFilterTags[purpose]
	out := make([]string, len(base))
	copy(out, base)
	return out
}
