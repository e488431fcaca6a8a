// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// UserByID loads one user record. The preference record lives in the badger
// preference store, not here; callers merge the two.
func (db *DB) UserByID(ctx context.Context, id int64) (models.User, error) {
	start := time.Now()

	stmt, err := db.getStmt(ctx, `
		SELECT id, name, home_lat, home_lng, history, COALESCE(age_group, ''), COALESCE(gender, '')
		FROM users WHERE id = ?`)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	var history string
	err = stmt.QueryRowContext(ctx, id).Scan(
		&u.ID, &u.Name, &u.Home.Lat, &u.Home.Lng, &history, &u.AgeGroup, &u.Gender)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}

	if err := json.Unmarshal([]byte(history), &u.History); err != nil {
		u.History = nil
	}
	return u, nil
}

// SaveUser upserts a user record.
func (db *DB) SaveUser(ctx context.Context, u models.User) error {
	history, err := json.Marshal(u.History)
	if err != nil {
		return fmt.Errorf("marshal user history: %w", err)
	}

	start := time.Now()
	stmt, err := db.getStmt(ctx, `
		INSERT OR REPLACE INTO users (id, name, home_lat, home_lng, history, age_group, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	_, err = stmt.ExecContext(ctx, u.ID, u.Name, u.Home.Lat, u.Home.Lng, string(history), u.AgeGroup, u.Gender)
	metrics.RecordDBQuery("upsert", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save user %d: %w", u.ID, err)
	}
	return nil
}

// AppendUserVisit records a visited venue on the user's history.
func (db *DB) AppendUserVisit(ctx context.Context, userID, venueID int64) error {
	u, err := db.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	u.History = append(u.History, venueID)
	return db.SaveUser(ctx, u)
}

// CalendarEvents returns the busy intervals of the given users that start
// on or after from.
func (db *DB) CalendarEvents(ctx context.Context, userIDs []int64, from time.Time) ([]models.CalendarEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	start := time.Now()
	query := `
		SELECT id, user_id, COALESCE(title, ''), start_at, duration_minutes, purpose, COALESCE(location_name, '')
		FROM calendar_events
		WHERE start_at >= ? AND user_id IN (` + placeholders(len(userIDs)) + `)`

	args := make([]any, 0, len(userIDs)+1)
	args = append(args, from)
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "calendar_events", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query calendar events: %w", err)
	}
	defer rows.Close()

	var out []models.CalendarEvent
	for rows.Next() {
		var ev models.CalendarEvent
		var purpose string
		var minutes int
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Start, &minutes, &purpose, &ev.Location); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		ev.Duration = time.Duration(minutes) * time.Minute
		ev.Purpose = models.ParsePurpose(purpose)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// SaveCalendarEvent upserts a busy interval.
func (db *DB) SaveCalendarEvent(ctx context.Context, ev models.CalendarEvent) error {
	start := time.Now()
	stmt, err := db.getStmt(ctx, `
		INSERT OR REPLACE INTO calendar_events (id, user_id, title, start_at, duration_minutes, purpose, location_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	_, err = stmt.ExecContext(ctx, ev.ID, ev.UserID, ev.Title, ev.Start,
		int(ev.Duration.Minutes()), ev.Purpose.String(), ev.Location)
	metrics.RecordDBQuery("upsert", "calendar_events", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save calendar event %s: %w", ev.ID, err)
	}
	return nil
}

func placeholders(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "?"
	}
	out := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '?')
	}
	return string(out)
}
