// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package geo

import (
	"math"
	"sync"

	"github.com/agoraplan/agora/internal/models"
)

// Grid divides geographic space into cells for fast proximity queries.
// Instead of O(n) comparisons to find nearby venues, we only check cells near
// the query point, reducing to O(k) where k = number of nearby entries.
//
// The venue store uses it to deduplicate provider results: two venues with
// the same name within ~50 m are the same place.
//
// Time Complexity:
//   - Insert: O(1)
//   - Query nearby: O(k) where k = entries in nearby cells
//   - Remove: O(1)
type Grid struct {
	mu       sync.RWMutex
	cells    map[cellKey]*cell
	cellSize float64 // cell size in degrees
	entries  map[string]*GridEntry
}

type cellKey struct {
	x, y int
}

type cell struct {
	entries []*GridEntry
}

// GridEntry is an entry in the spatial grid.
type GridEntry struct {
	ID       string
	Location models.Location
	Data     any
	key      cellKey // cached cell key for fast removal
}

// NewGrid creates a spatial grid with approximately cellSizeMeters cells.
// Smaller cells are more precise but mean more cells to check per query.
func NewGrid(cellSizeMeters float64) *Grid {
	if cellSizeMeters <= 0 {
		cellSizeMeters = 100
	}

	// 1 degree is roughly 111km at the equator.
	cellSizeDeg := cellSizeMeters / 1000.0 / 111.0

	return &Grid{
		cells:    make(map[cellKey]*cell),
		cellSize: cellSizeDeg,
		entries:  make(map[string]*GridEntry),
	}
}

func (g *Grid) keyFor(loc models.Location) cellKey {
	lng := loc.Lng
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}

	return cellKey{
		x: int(math.Floor(lng / g.cellSize)),
		y: int(math.Floor(loc.Lat / g.cellSize)),
	}
}

// Insert adds an entry to the grid. An existing entry with the same ID is
// replaced.
func (g *Grid) Insert(id string, loc models.Location, data any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCellLocked(existing)
	}

	key := g.keyFor(loc)
	entry := &GridEntry{ID: id, Location: loc, Data: data, key: key}

	c, ok := g.cells[key]
	if !ok {
		c = &cell{entries: make([]*GridEntry, 0, 4)}
		g.cells[key] = c
	}
	c.entries = append(c.entries, entry)
	g.entries[id] = entry
}

// Remove removes an entry by ID. It reports whether the entry existed.
func (g *Grid) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return false
	}
	g.removeFromCellLocked(entry)
	delete(g.entries, id)
	return true
}

// removeFromCellLocked removes an entry from its cell (caller holds lock).
func (g *Grid) removeFromCellLocked(entry *GridEntry) {
	c, ok := g.cells[entry.key]
	if !ok {
		return
	}
	for i, e := range c.entries {
		if e.ID == entry.ID {
			c.entries[i] = c.entries[len(c.entries)-1]
			c.entries = c.entries[:len(c.entries)-1]
			break
		}
	}
	if len(c.entries) == 0 {
		delete(g.cells, entry.key)
	}
}

// Size returns the number of entries in the grid.
func (g *Grid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// QueryNearby returns all entries within radiusMeters of the given point.
func (g *Grid) QueryNearby(loc models.Location, radiusMeters float64) []*GridEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	radiusDeg := radiusMeters / 1000.0 / 111.0
	reach := int(math.Ceil(radiusDeg/g.cellSize)) + 1
	center := g.keyFor(loc)

	var results []*GridEntry
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			c, ok := g.cells[cellKey{x: center.x + dx, y: center.y + dy}]
			if !ok {
				continue
			}
			for _, entry := range c.entries {
				if HaversineMeters(loc, entry.Location) <= radiusMeters {
					cp := *entry
					results = append(results, &cp)
				}
			}
		}
	}
	return results
}
