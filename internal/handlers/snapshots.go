// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Snapshots handles GET /api/snapshots: the client's generation history,
// newest first.
func (a *API) Snapshots(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	snaps, err := a.snapshotStore.ListByClient(sess.ClientID, 0)
	if err != nil {
		slog.Error("snapshot list failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

// Snapshot handles GET /api/snapshots/{id}. Lookups are scoped to the
// requesting client; another client's snapshot id answers 404.
func (a *API) Snapshot(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}

	snap, err := a.snapshotStore.FindByID(sess.ClientID, id)
	if err != nil {
		slog.Error("snapshot lookup failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load snapshot")
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// RestoreSnapshot handles POST /api/snapshots/{id}/restore: loading a past
// generation back into the workspace. Restoring does not re-run the
// provider; it replaces the buffers and the active prompt with the stored
// values.
func (a *API) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}

	snap, err := a.snapshotStore.FindByID(sess.ClientID, id)
	if err != nil {
		slog.Error("snapshot lookup failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load snapshot")
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}

	if a.workspaces.Generating(sess.ClientID) {
		writeError(w, http.StatusConflict, "a generation is already in progress")
		return
	}

	a.workspaces.SetPrompt(sess.ClientID, snap.Prompt)
	a.workspaces.Apply(sess.ClientID, snap.Generation())
	writeJSON(w, http.StatusOK, a.workspaces.Snapshot(sess.ClientID))
}
