// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

// Package recommend ranks venues for a group meetup. It has three parts:
//
//   - Candidate filtering: purpose category whitelists, tag matching against
//     venue text, purpose heuristics, and a safety valve that refuses to
//     return a near-empty list.
//   - Scoring strategies behind the Strategy interface: the canonical vector
//     strategy (preference-vector dot product with purpose bonus and distance
//     penalty) and the additive strategy (tag-weight sums).
//   - History similarity: surfacing venues from past meetings that looked
//     like this one.
//
// All tunable constants live in Config; DefaultConfig matches the shipped
// behavior. Everything in this package is pure computation, safe for
// concurrent use.
package recommend
