// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/models"
)

// prefKeyPrefix namespaces preference profiles in the shared database.
const prefKeyPrefix = "pref:"

// ErrPreferenceNotFound is returned when no profile exists for a user.
var ErrPreferenceNotFound = errors.New("preference profile not found")

// PreferenceStore persists per-user preference profiles, including the
// tag weights adjusted by review learning.
type PreferenceStore struct {
	db *badger.DB
}

// NewPreferenceStore creates a preference store on the shared database.
func NewPreferenceStore(db *badger.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

func prefKey(userID string) []byte {
	return []byte(prefKeyPrefix + userID)
}

// Get retrieves the preference profile for a user.
// Returns ErrPreferenceNotFound when the user has no stored profile.
func (s *PreferenceStore) Get(ctx context.Context, userID string) (*models.PreferenceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record models.PreferenceRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrPreferenceNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		if errors.Is(err, ErrPreferenceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get preference profile: %w", err)
	}

	return &record, nil
}

// Put stores the preference profile for a user, replacing any existing one.
func (s *PreferenceStore) Put(ctx context.Context, userID string, record *models.PreferenceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal preference profile: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(prefKey(userID), data)
	})
}

// Delete removes the preference profile for a user. Deleting a missing
// profile is not an error.
func (s *PreferenceStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(prefKey(userID))
	})
}
