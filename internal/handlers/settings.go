// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"websmith/internal/models"
)

type providerStatus struct {
	Name   string `json:"name"`
	HasKey bool   `json:"has_key"`
}

type settingsResponse struct {
	SelectedProvider string           `json:"selected_provider"`
	Providers        []providerStatus `json:"providers"`
}

// settingsView reports which providers have a stored key without ever
// echoing the keys themselves. Keys are write-only through this API.
func (a *API) settingsView(s *models.Settings) settingsResponse {
	resp := settingsResponse{
		SelectedProvider: s.SelectedProvider,
		Providers:        []providerStatus{{Name: models.ProviderLocal, HasKey: true}},
	}
	for _, name := range a.registry.Available() {
		resp.Providers = append(resp.Providers, providerStatus{
			Name:   name,
			HasKey: s.Credential(name) != "",
		})
	}
	return resp
}

// Settings handles GET /api/settings.
func (a *API) Settings(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	settings, err := a.settingsStore.Find(sess.ClientID)
	if err != nil {
		slog.Error("settings lookup failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	writeJSON(w, http.StatusOK, a.settingsView(settings))
}

type updateSettingsRequest struct {
	SelectedProvider *string           `json:"selected_provider"`
	Credentials      map[string]string `json:"credentials"`
}

// UpdateSettings handles PUT /api/settings. Changes apply immediately: the
// next generation uses the new provider and keys, with no confirmation
// step. Credentials are merged per provider — a non-empty value stores a
// key, an empty value deletes it, absent providers are left alone.
func (a *API) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	var req updateSettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	settings, err := a.settingsStore.Find(sess.ClientID)
	if err != nil {
		slog.Error("settings lookup failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}

	if req.SelectedProvider != nil {
		name := *req.SelectedProvider
		if name != models.ProviderLocal && !a.registry.Known(name) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown provider %q", name))
			return
		}
		settings.SelectedProvider = name
	}

	for name, key := range req.Credentials {
		if !a.registry.Known(name) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown provider %q", name))
			return
		}
		if key == "" {
			delete(settings.Credentials, name)
			continue
		}
		if settings.Credentials == nil {
			settings.Credentials = make(map[string]string)
		}
		settings.Credentials[name] = key
	}

	if err := a.settingsStore.Save(settings); err != nil {
		slog.Error("settings save failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save settings")
		return
	}
	writeJSON(w, http.StatusOK, a.settingsView(settings))
}
