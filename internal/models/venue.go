// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import "strings"

// Category classifies a venue. Categories are a fixed vocabulary; the venue
// provider maps free-text source categories onto it when ingesting results.
type Category string

// Known venue categories. CategoryJunk marks records the provider rejected
// (pharmacies, parking lots, offices) that must never reach candidates.
const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryBar        Category = "bar"
	CategoryPub        Category = "pub"
	CategoryIzakaya    Category = "izakaya"
	CategoryWorkspace  Category = "workspace"
	CategoryFineDining Category = "fine_dining"
	CategoryCulture    Category = "culture"
	CategoryLibrary    Category = "library"
	CategoryBakeryCafe Category = "bakery_cafe"
	CategoryDessert    Category = "dessert"
	CategoryKorean     Category = "korean"
	CategoryChinese    Category = "chinese"
	CategoryJapanese   Category = "japanese"
	CategoryWestern    Category = "western"
	CategorySnack      Category = "snack"
	CategoryBBQ        Category = "bbq"
	CategoryPocha      Category = "pocha"
	CategoryHotel      Category = "hotel"
	CategoryPark       Category = "park"
	CategoryPlace      Category = "place"
	CategoryJunk       Category = "junk"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Venue is a point of interest candidate for a meetup. Venues are immutable
// once fetched for a request; the persisted venue store deduplicates them by
// name within roughly 50 meters.
type Venue struct {
	// ID is the venue identifier in the persisted store. Zero for venues
	// that came straight from the provider and were not persisted yet.
	ID int64 `json:"id"`

	// Name is the display name, HTML-stripped by the provider.
	Name string `json:"name"`

	// Category is the normalized venue category.
	Category Category `json:"category"`

	// Tags are free-text attributes derived from history or provider text.
	Tags []string `json:"tags"`

	// PriceLevel is an ordinal 1 (cheapest) to 5 (most expensive).
	PriceLevel int `json:"price_level"`

	// Location is the venue coordinate.
	Location Location `json:"location"`

	// Rating is the average rating, 1.0 to 5.0.
	Rating float64 `json:"rating"`

	// Address is the road address when known.
	Address string `json:"address,omitempty"`
}

// SearchText returns the lowercased concatenation of name, category, and tags
// used for case-insensitive containment matching during filtering.
func (v *Venue) SearchText() string {
	parts := make([]string, 0, len(v.Tags)+2)
	parts = append(parts, v.Name, string(v.Category))
	parts = append(parts, v.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// HasTag reports whether the venue carries the given tag exactly
// (case-insensitive).
func (v *Venue) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the venue carries any of the given tags.
func (v *Venue) HasAnyTag(tags ...string) bool {
	for _, tag := range tags {
		if v.HasTag(tag) {
			return true
		}
	}
	return false
}

// ScoredVenue pairs a venue with its final recommendation score.
type ScoredVenue struct {
	Venue Venue   `json:"venue"`
	Score float64 `json:"score"`
}
