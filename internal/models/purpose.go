// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import "strings"

// Purpose is the categorical intent of a meeting. It drives candidate
// filtering, scoring bonuses, and time-slot desirability.
type Purpose int

const (
	// PurposeMeal is a general shared meal. It is also the fallback for
	// unrecognized purpose strings.
	PurposeMeal Purpose = iota
	// PurposeBusiness is a work meeting: client hosting, team sessions.
	PurposeBusiness
	// PurposeDate is a romantic meetup.
	PurposeDate
	// PurposeStudy is a focused work or study session.
	PurposeStudy
	// PurposeDrinking is a night out or team dinner with alcohol.
	PurposeDrinking
	// PurposeCafe is a casual coffee or dessert meetup.
	PurposeCafe
)

// String returns the canonical wire name for the purpose.
func (p Purpose) String() string {
	switch p {
	case PurposeBusiness:
		return "business"
	case PurposeDate:
		return "date"
	case PurposeStudy:
		return "study"
	case PurposeDrinking:
		return "drinking"
	case PurposeCafe:
		return "cafe"
	case PurposeMeal:
		return "meal"
	default:
		return "meal"
	}
}

// ParsePurpose maps a purpose string to a Purpose. It is total: any
// unrecognized or empty input maps to PurposeMeal rather than an error, so
// callers never fail on a malformed purpose.
func ParsePurpose(s string) Purpose {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "business":
		return PurposeBusiness
	case "date":
		return PurposeDate
	case "study":
		return PurposeStudy
	case "drinking":
		return PurposeDrinking
	case "cafe":
		return PurposeCafe
	case "meal":
		return PurposeMeal
	default:
		return PurposeMeal
	}
}

// Purposes lists every defined purpose. The order is stable and matches the
// enum values.
func Purposes() []Purpose {
	return []Purpose{
		PurposeMeal,
		PurposeBusiness,
		PurposeDate,
		PurposeStudy,
		PurposeDrinking,
		PurposeCafe,
	}
}

// MarshalJSON encodes the purpose as its canonical string.
func (p Purpose) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a purpose string, falling back to PurposeMeal for
// unknown values.
func (p *Purpose) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*p = ParsePurpose(s)
	return nil
}
