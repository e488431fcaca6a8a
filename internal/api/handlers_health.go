// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package api

import (
	"net/http"
	"time"
)

// Health reports overall service health with uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	respondSuccess(w, map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, started)
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	respondSuccess(w, map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, started)
}

// HealthReady is the readiness probe: backing stores answer.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Backing stores are not ready", err)
			return
		}
	}
	respondSuccess(w, map[string]interface{}{"ready": true}, started)
}
