// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/metrics"
	"github.com/agoraplan/agora/internal/models"
)

// travelKeyPrefix namespaces travel-time entries in the shared database.
const travelKeyPrefix = "travel:"

// TravelTimeEntry is a cached transit duration between two points.
type TravelTimeEntry struct {
	Minutes   int       `json:"minutes"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// TravelCache is a durable cache of provider-sourced travel times.
// Distance-derived fallback estimates are never stored here; only real
// provider answers are worth keeping.
type TravelCache struct {
	db *badger.DB

	// ttl bounds entry lifetime. Zero means entries never expire.
	ttl time.Duration
}

// NewTravelCache creates a travel-time cache on the shared database.
func NewTravelCache(db *badger.DB, ttl time.Duration) *TravelCache {
	return &TravelCache{db: db, ttl: ttl}
}

// travelKey builds the canonical key for a directed origin-destination
// pair. Coordinates are rounded to 5 decimal places (about 1 meter), so
// lookups for the same physical pair hit the same entry.
func travelKey(origin, dest models.Location) []byte {
	return []byte(fmt.Sprintf("%s%.5f,%.5f|%.5f,%.5f",
		travelKeyPrefix, origin.Lat, origin.Lng, dest.Lat, dest.Lng))
}

// Get looks up a cached travel time. The second return value reports
// whether an entry was found.
func (c *TravelCache) Get(ctx context.Context, origin, dest models.Location) (TravelTimeEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return TravelTimeEntry{}, false, err
	}

	var entry TravelTimeEntry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(travelKey(origin, dest))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		metrics.TravelCacheMisses.Inc()
		return TravelTimeEntry{}, false, nil
	}
	if err != nil {
		return TravelTimeEntry{}, false, fmt.Errorf("get travel time: %w", err)
	}

	metrics.TravelCacheHits.Inc()
	return entry, true, nil
}

// Put stores a provider-sourced travel time.
func (c *TravelCache) Put(ctx context.Context, origin, dest models.Location, entry TravelTimeEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal travel time: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(travelKey(origin, dest), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Size counts the cached entries. Badger only exposes this through a key
// scan, so it is for diagnostics rather than hot paths.
func (c *TravelCache) Size() (int, error) {
	count := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(travelKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
