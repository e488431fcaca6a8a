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
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// defaultDedupeRadiusMeters is the distance under which two same-named
// venues count as one record when no radius is configured.
const defaultDedupeRadiusMeters = 50.0

// dedupeRadius returns the configured venue dedupe radius in meters.
func (db *DB) dedupeRadius() float64 {
	if db.cfg.DedupeRadiusM > 0 {
		return db.cfg.DedupeRadiusM
	}
	return defaultDedupeRadiusMeters
}

// VenuesNear returns persisted venues inside the box around center.
func (db *DB) VenuesNear(ctx context.Context, center models.Location, box float64) ([]models.Venue, error) {
	start := time.Now()

	stmt, err := db.getStmt(ctx, `
		SELECT id, name, category, tags, price_level, lat, lng, rating, COALESCE(address, '')
		FROM venues
		WHERE lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?`)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx,
		center.Lat-box, center.Lat+box, center.Lng-box, center.Lng+box)
	metrics.RecordDBQuery("select", "venues", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	var out []models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// VenuesByIDs resolves venue records for a user's visit history. Missing
// IDs are skipped.
func (db *DB) VenuesByIDs(ctx context.Context, ids []int64) ([]models.Venue, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	start := time.Now()
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT id, name, category, tags, price_level, lat, lng, rating, COALESCE(address, '')
		FROM venues WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "venues", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query venues by id: %w", err)
	}
	defer rows.Close()

	var out []models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SaveVenues persists provider results, skipping records that duplicate an
// existing venue by name within the configured dedupe radius. Existing and
// freshly inserted venues share one spatial grid so a batch also dedupes
// against itself.
func (db *DB) SaveVenues(ctx context.Context, venues []models.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	grid, err := db.venueGrid(ctx, venues)
	if err != nil {
		return err
	}

	for i, v := range venues {
		if db.hasNamesake(grid, v) {
			continue
		}

		tags, err := json.Marshal(v.Tags)
		if err != nil {
			return fmt.Errorf("marshal venue tags: %w", err)
		}

		start := time.Now()
		stmt, err := db.getStmt(ctx, `
			INSERT INTO venues (name, category, tags, price_level, lat, lng, rating, address)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			v.Name, string(v.Category), string(tags), v.PriceLevel,
			v.Location.Lat, v.Location.Lng, v.Rating, v.Address)
		metrics.RecordDBQuery("insert", "venues", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("insert venue %q: %w", v.Name, err)
		}

		grid.Insert(fmt.Sprintf("new-%d", i), v.Location, v.Name)
	}
	return nil
}

// venueGrid loads the stored venues sharing a name with the batch into a
// spatial grid sized for the dedupe radius.
func (db *DB) venueGrid(ctx context.Context, venues []models.Venue) (*geo.Grid, error) {
	names := make([]string, 0, len(venues))
	args := make([]interface{}, 0, len(venues))
	seen := make(map[string]struct{}, len(venues))
	for _, v := range venues {
		if _, ok := seen[v.Name]; ok {
			continue
		}
		seen[v.Name] = struct{}{}
		names = append(names, "?")
		args = append(args, v.Name)
	}

	query := fmt.Sprintf(`SELECT id, name, lat, lng FROM venues WHERE name IN (%s)`,
		strings.Join(names, ", "))
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "venues", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load venues for dedupe: %w", err)
	}
	defer rows.Close()

	grid := geo.NewGrid(db.dedupeRadius())
	for rows.Next() {
		var id int64
		var name string
		var loc models.Location
		if err := rows.Scan(&id, &name, &loc.Lat, &loc.Lng); err != nil {
			return nil, err
		}
		grid.Insert(fmt.Sprintf("db-%d", id), loc, name)
	}
	return grid, rows.Err()
}

func (db *DB) hasNamesake(grid *geo.Grid, v models.Venue) bool {
	for _, entry := range grid.QueryNearby(v.Location, db.dedupeRadius()) {
		if name, ok := entry.Data.(string); ok && name == v.Name {
			return true
		}
	}
	return false
}

func scanVenue(rows *sql.Rows) (models.Venue, error) {
	var v models.Venue
	var category, tags string
	if err := rows.Scan(&v.ID, &v.Name, &category, &tags, &v.PriceLevel,
		&v.Location.Lat, &v.Location.Lng, &v.Rating, &v.Address); err != nil {
		return models.Venue{}, fmt.Errorf("scan venue: %w", err)
	}
	v.Category = models.Category(category)
	if err := json.Unmarshal([]byte(tags), &v.Tags); err != nil {
		// Malformed tag data is skipped, not fatal.
		v.Tags = nil
	}
	return v, nil
}

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("record not found")
