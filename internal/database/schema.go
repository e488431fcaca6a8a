// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package database

import (
	"fmt"
)

// Tag lists and preference maps are stored as JSON text columns. DuckDB
// list columns would also work, but JSON keeps the scan code uniform with
// the badger stores.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS venues_id_seq`,
	`CREATE TABLE IF NOT EXISTS venues (
		id BIGINT PRIMARY KEY DEFAULT nextval('venues_id_seq'),
		name VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		tags VARCHAR NOT NULL DEFAULT '[]',
		price_level INTEGER NOT NULL DEFAULT 3,
		lat DOUBLE NOT NULL,
		lng DOUBLE NOT NULL,
		rating DOUBLE NOT NULL DEFAULT 4.0,
		address VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		home_lat DOUBLE NOT NULL DEFAULT 0,
		home_lng DOUBLE NOT NULL DEFAULT 0,
		history VARCHAR NOT NULL DEFAULT '[]',
		age_group VARCHAR,
		gender VARCHAR
	)`,
	`CREATE SEQUENCE IF NOT EXISTS meeting_history_id_seq`,
	`CREATE TABLE IF NOT EXISTS meeting_history (
		id BIGINT PRIMARY KEY DEFAULT nextval('meeting_history_id_seq'),
		purpose VARCHAR NOT NULL,
		tags VARCHAR NOT NULL DEFAULT '[]',
		participant_count INTEGER NOT NULL,
		region_name VARCHAR NOT NULL,
		venue_name VARCHAR NOT NULL,
		venue_category VARCHAR NOT NULL,
		satisfaction DOUBLE NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id VARCHAR PRIMARY KEY,
		user_id BIGINT NOT NULL,
		title VARCHAR,
		start_at TIMESTAMP NOT NULL,
		duration_minutes INTEGER NOT NULL,
		purpose VARCHAR NOT NULL,
		location_name VARCHAR
	)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_location ON venues (lat, lng)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_name ON venues (name)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user ON calendar_events (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_history_purpose ON meeting_history (purpose)`,
}

func (db *DB) createTables() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// seed loads a handful of starter venues so a fresh install can answer
// recommendations before the provider has backfilled anything.
func (db *DB) seed() error {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM venues").Scan(&count); err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name, category, tags string
		price                int
		lat, lng, rating     float64
	}{
		{"Gangnam Teppan Works", "fine_dining", `["upscale","room"]`, 5, 37.4985, 127.0295, 4.6},
		{"Mellow Coffee Roastery", "cafe", `["cafe","quiet"]`, 2, 37.4992, 127.0268, 4.4},
		{"Hongdae Vinyl Pub", "izakaya", `["alcohol","loud"]`, 3, 37.5570, 126.9250, 4.2},
		{"Seoul Station Workhub", "workspace", `["meeting","quiet-work"]`, 2, 37.5562, 126.9715, 4.1},
		{"Euljiro Pasta Bar", "western", `["western","ambiance","wine"]`, 4, 37.5660, 126.9922, 4.5},
		{"Jongno Gukbap House", "korean", `["korean","value"]`, 1, 37.5713, 126.9910, 4.0},
	}

	for _, v := range seed {
		_, err := db.conn.Exec(
			`INSERT INTO venues (name, category, tags, price_level, lat, lng, rating) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.name, v.category, v.tags, v.price, v.lat, v.lng, v.rating)
		if err != nil {
			return fmt.Errorf("seed venues: %w", err)
		}
	}
	return nil
}
