// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package schedule computes free meeting slots from participant calendars
// and ranks them by purpose-specific desirability. Slots are 30-minute
// buckets inside a daily operating window; a slot is free only when the
// whole meeting duration fits without touching any participant's events.
package schedule

import (
	"sort"
	"time"

	"github.com/agoraplan/agora/internal/models"
)

// Desirability tuning. These are empirical, not derived; the day penalty
// keeps sooner dates ahead of nominally nicer hours on later days.
const (
	dayOffsetPenalty = 2.0
	lunchBonus       = 50.0
	dinnerBonus      = 60.0
	afternoonBonus   = 30.0
	workHoursBonus   = 20.0
)

// Config tunes the slot grid and result size.
type Config struct {
	// DayStartHour and DayEndHour bound the daily operating window.
	// A meeting must end by DayEndHour.
	DayStartHour int
	DayEndHour   int

	// SlotMinutes is the bucket granularity.
	SlotMinutes int

	// DefaultDuration is used when the caller supplies none.
	DefaultDuration time.Duration

	// TopSlots is how many ranked slots Suggest surfaces.
	TopSlots int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		DayStartHour:    9,
		DayEndHour:      22,
		SlotMinutes:     30,
		DefaultDuration: 2 * time.Hour,
		TopSlots:        3,
	}
}

// Scheduler finds and ranks group meeting slots.
type Scheduler struct {
	cfg Config
}

// New builds a scheduler, filling unset config fields from the defaults.
func New(cfg Config) *Scheduler {
	def := DefaultConfig()
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = def.SlotMinutes
	}
	if cfg.DayEndHour <= cfg.DayStartHour {
		cfg.DayStartHour, cfg.DayEndHour = def.DayStartHour, def.DayEndHour
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = def.DefaultDuration
	}
	if cfg.TopSlots <= 0 {
		cfg.TopSlots = def.TopSlots
	}
	return &Scheduler{cfg: cfg}
}

func (s *Scheduler) step() time.Duration {
	return time.Duration(s.cfg.SlotMinutes) * time.Minute
}

// FreeSlots returns every start time within the horizon where a meeting of
// the given duration fits for all participants. Results are ascending.
// Slots that have already started are excluded.
func (s *Scheduler) FreeSlots(now time.Time, events []models.CalendarEvent, horizonDays int, duration time.Duration) []time.Time {
	if duration <= 0 {
		duration = s.cfg.DefaultDuration
	}
	if horizonDays <= 0 {
		horizonDays = 1
	}

	// Buckets are keyed by the absolute instant so events reported in a
	// different zone than now (UTC timestamps against a local clock)
	// still collide with the local slot grid.
	step := s.step()
	occupied := make(map[int64]struct{})
	for _, ev := range events {
		for b := ev.Start.Truncate(step); b.Before(ev.End()); b = b.Add(step) {
			occupied[b.UnixNano()] = struct{}{}
		}
	}

	var slots []time.Time
	for day := 0; day < horizonDays; day++ {
		date := now.AddDate(0, 0, day)
		open := time.Date(date.Year(), date.Month(), date.Day(), s.cfg.DayStartHour, 0, 0, 0, now.Location())
		close := time.Date(date.Year(), date.Month(), date.Day(), s.cfg.DayEndHour, 0, 0, 0, now.Location())
		lastStart := close.Add(-duration)

		for t := open; !t.After(lastStart); t = t.Add(step) {
			if t.Before(now) {
				continue
			}
			if s.fits(t, duration, occupied) {
				slots = append(slots, t)
			}
		}
	}
	return slots
}

// fits reports whether every bucket covered by the meeting is free.
func (s *Scheduler) fits(start time.Time, duration time.Duration, occupied map[int64]struct{}) bool {
	end := start.Add(duration)
	for b := start; b.Before(end); b = b.Add(s.step()) {
		if _, busy := occupied[b.UnixNano()]; busy {
			return false
		}
	}
	return true
}

// Desirability scores a slot for a purpose. Higher is better. Later
// calendar days are penalized so the soonest workable slot tends to win.
func (s *Scheduler) Desirability(slot time.Time, purpose models.Purpose, now time.Time) float64 {
	score := -dayOffsetPenalty * float64(dayOffset(now, slot))

	hour := slot.Hour()
	switch purpose {
	case models.PurposeMeal, models.PurposeDrinking:
		switch {
		case hour == 11 || hour == 12:
			score += lunchBonus
		case hour == 18 || hour == 19:
			score += dinnerBonus
		}
	case models.PurposeCafe, models.PurposeStudy:
		if hour >= 14 && hour <= 16 {
			score += afternoonBonus
		}
	case models.PurposeBusiness:
		if hour >= 10 && hour <= 17 {
			score += workHoursBonus
		}
	}
	return score
}

// Suggest returns the top-ranked free slots for the group. When the whole
// horizon is booked, the single fallback slot "one hour from now" is
// returned so the caller always has something to offer.
func (s *Scheduler) Suggest(now time.Time, events []models.CalendarEvent, horizonDays int, duration time.Duration, purpose models.Purpose) []time.Time {
	slots := s.FreeSlots(now, events, horizonDays, duration)
	if len(slots) == 0 {
		return []time.Time{now.Add(time.Hour)}
	}

	ranked := make([]time.Time, len(slots))
	copy(ranked, slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		si := s.Desirability(ranked[i], purpose, now)
		sj := s.Desirability(ranked[j], purpose, now)
		if si != sj {
			return si > sj
		}
		return ranked[i].Before(ranked[j])
	})

	if len(ranked) > s.cfg.TopSlots {
		ranked = ranked[:s.cfg.TopSlots]
	}
	return ranked
}

// dayOffset counts calendar days between now and the slot.
func dayOffset(now, slot time.Time) int {
	nd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sd := time.Date(slot.Year(), slot.Month(), slot.Day(), 0, 0, 0, 0, slot.Location())
	return int(sd.Sub(nd).Hours() / 24)
}
