// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package models

import "testing"

func TestParsePurpose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Purpose
	}{
		{"business", "business", PurposeBusiness},
		{"date", "date", PurposeDate},
		{"study", "study", PurposeStudy},
		{"drinking", "drinking", PurposeDrinking},
		{"cafe", "cafe", PurposeCafe},
		{"meal", "meal", PurposeMeal},
		{"uppercase", "BUSINESS", PurposeBusiness},
		{"padded", "  date  ", PurposeDate},
		{"unknown falls back to meal", "karaoke", PurposeMeal},
		{"empty falls back to meal", "", PurposeMeal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParsePurpose(tt.input); got != tt.want {
				t.Errorf("ParsePurpose(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPurposeStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range Purposes() {
		if got := ParsePurpose(p.String()); got != p {
			t.Errorf("ParsePurpose(%q) = %v, want %v", p.String(), got, p)
		}
	}
}

func TestPurposeJSON(t *testing.T) {
	t.Parallel()

	data, err := PurposeDate.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"date"` {
		t.Errorf("MarshalJSON = %s, want %q", data, `"date"`)
	}

	var p Purpose
	if err := p.UnmarshalJSON([]byte(`"study"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if p != PurposeStudy {
		t.Errorf("UnmarshalJSON = %v, want %v", p, PurposeStudy)
	}

	// Unknown purposes decode to the default, never an error.
	if err := p.UnmarshalJSON([]byte(`"bowling"`)); err != nil {
		t.Fatalf("UnmarshalJSON unknown: %v", err)
	}
	if p != PurposeMeal {
		t.Errorf("UnmarshalJSON unknown = %v, want %v", p, PurposeMeal)
	}
}
