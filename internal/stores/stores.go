// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package stores provides the durable BadgerDB-backed key-value stores:
// the travel-time cache and the preference profile store. Both share a
// single Badger database separated by key prefixes.
package stores

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/agoraplan/agora/internal/logging"
)

// Options configures the shared Badger database.
type Options struct {
	// Path is the on-disk directory. Ignored when InMemory is set.
	Path string

	// InMemory opens an ephemeral database, used by tests and dev mode.
	InMemory bool
}

// Open opens (or creates) the shared Badger database.
func Open(opts Options) (*badger.DB, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Badger's own logger is noisy at INFO; all store logging goes
	// through zerolog instead.
	badgerOpts.Logger = nil

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", opts.Path, err)
	}

	logging.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Msg("Key-value store opened")

	return db, nil
}

// RunGC triggers one value-log garbage collection cycle. Badger returns
// ErrNoRewrite when there is nothing to collect; that is not a failure.
func RunGC(db *badger.DB) error {
	err := db.RunValueLogGC(0.5)
	if err == badger.ErrNoRewrite {
		return nil
	}
	return err
}
