// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// MeetingHistory returns the most recent completed meetings, newest first.
func (db *DB) MeetingHistory(ctx context.Context, limit int) ([]models.MeetingHistoryRecord, error) {
	if limit <= 0 {
		limit = 200
	}

	start := time.Now()
	stmt, err := db.getStmt(ctx, `
		SELECT id, purpose, tags, participant_count, region_name, venue_name, venue_category, satisfaction, created_at
		FROM meeting_history
		ORDER BY created_at DESC
		LIMIT ?`)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, limit)
	metrics.RecordDBQuery("select", "meeting_history", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query meeting history: %w", err)
	}
	defer rows.Close()

	var out []models.MeetingHistoryRecord
	for rows.Next() {
		var rec models.MeetingHistoryRecord
		var purpose, tags, category string
		if err := rows.Scan(&rec.ID, &purpose, &tags, &rec.ParticipantCount,
			&rec.RegionName, &rec.VenueName, &category, &rec.Satisfaction, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting history: %w", err)
		}
		rec.Purpose = models.ParsePurpose(purpose)
		rec.VenueCategory = models.Category(category)
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			// Malformed tag data: keep the row, the similarity matcher
			// handles empty tag sets.
			rec.Tags = nil
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AppendMeetingHistory records a concluded meeting.
func (db *DB) AppendMeetingHistory(ctx context.Context, rec models.MeetingHistoryRecord) error {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("marshal history tags: %w", err)
	}

	start := time.Now()
	stmt, err := db.getStmt(ctx, `
		INSERT INTO meeting_history (purpose, tags, participant_count, region_name, venue_name, venue_category, satisfaction)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	_, err = stmt.ExecContext(ctx, rec.Purpose.String(), string(tags), rec.ParticipantCount,
		rec.RegionName, rec.VenueName, string(rec.VenueCategory), rec.Satisfaction)
	metrics.RecordDBQuery("insert", "meeting_history", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("append meeting history: %w", err)
	}
	return nil
}
