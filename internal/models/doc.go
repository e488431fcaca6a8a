// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package models defines the shared domain types for the planning engine:
// purposes, venues, users and their preference records, calendar events,
// meeting history, regions, and the API response envelope.
//
// Types in this package are plain data carriers. They hold no behavior beyond
// cheap derived accessors, so every other package can depend on them without
// creating import cycles.
package models
