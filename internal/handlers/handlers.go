// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API and the preview/export
// surfaces. Handlers read the client identity from the session middleware
// and operate on that client's workspace, settings, and history.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"websmith/internal/ai"
	"websmith/internal/generator"
	"websmith/internal/middleware"
	"websmith/internal/preview"
	"websmith/internal/session"
	"websmith/internal/storage"
	"websmith/internal/store"
	"websmith/internal/workspace"
)

// API groups the HTTP handlers and their dependencies.
type API struct {
	workspaces    *workspace.Manager
	previews      *preview.Synchronizer
	hub           *preview.Hub
	orchestrator  *generator.Orchestrator
	registry      *ai.Registry
	settingsStore *store.SettingsStore
	snapshotStore *store.SnapshotStore
	storageClient *storage.Client // may be nil — publishing disabled
	publicURL     string
}

// New creates the API handler group.
func New(
	workspaces *workspace.Manager,
	previews *preview.Synchronizer,
	hub *preview.Hub,
	orchestrator *generator.Orchestrator,
	registry *ai.Registry,
	settingsStore *store.SettingsStore,
	snapshotStore *store.SnapshotStore,
	storageClient *storage.Client,
	publicURL string,
) *API {
	return &API{
		workspaces:    workspaces,
		previews:      previews,
		hub:           hub,
		orchestrator:  orchestrator,
		registry:      registry,
		settingsStore: settingsStore,
		snapshotStore: snapshotStore,
		storageClient: storageClient,
		publicURL:     publicURL,
	}
}

// sess returns the request's session data. The session middleware runs on
// every route, so a nil result means a wiring bug, not a user error.
func (a *API) sess(r *http.Request) *session.Data {
	return middleware.SessionFromCtx(r.Context())
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody parses a JSON request body into dst, answering 400 itself on
// failure. Returns false when the caller should stop.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
