// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"

	"websmith/internal/models"
)

// Code handles GET /api/code: the client's current buffers.
func (a *API) Code(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)
	writeJSON(w, http.StatusOK, a.workspaces.Snapshot(sess.ClientID))
}

type updateCodeRequest struct {
	Field models.Field `json:"field"`
	Value string       `json:"value"`
}

// UpdateCode handles PUT /api/code: replacing one buffer with edited
// content. The value is stored as-is; the preview renders whatever the
// user typed.
func (a *API) UpdateCode(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	var req updateCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Field.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", req.Field))
		return
	}

	a.workspaces.Update(sess.ClientID, req.Field, req.Value)
	writeJSON(w, http.StatusOK, a.workspaces.Snapshot(sess.ClientID))
}

// ClearCode handles POST /api/code/clear: blanking all three buffers. The
// active prompt is preserved.
func (a *API) ClearCode(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)
	a.workspaces.Clear(sess.ClientID)
	writeJSON(w, http.StatusOK, a.workspaces.Snapshot(sess.ClientID))
}
