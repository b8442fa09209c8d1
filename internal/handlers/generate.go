// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"websmith/internal/generator"
	"websmith/internal/models"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Generation   models.Generation `json:"generation"`
	PreviewToken string            `json:"preview_token,omitempty"`
}

// Generate handles POST /api/generate: the explicit "generate website"
// action. It clears the workspace first so stale content never shows while
// the provider is working, runs the orchestrator, applies the result, and
// records a history snapshot.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusUnprocessableEntity, "prompt is empty")
		return
	}

	if !a.workspaces.BeginGeneration(sess.ClientID) {
		writeError(w, http.StatusConflict, "a generation is already in progress")
		return
	}
	defer a.workspaces.EndGeneration(sess.ClientID)

	a.workspaces.SetPrompt(sess.ClientID, req.Prompt)
	a.runGeneration(w, r, req.Prompt)
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// Prompt handles POST /api/prompt: applying an example prompt. Unlike the
// explicit generate action, this only triggers generation when the prompt
// actually changed; re-applying the identical prompt is a no-op.
func (a *API) Prompt(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	var req promptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusUnprocessableEntity, "prompt is empty")
		return
	}

	// The in-flight flag is taken before the prompt is recorded, so a
	// submission rejected with 409 leaves the change trigger intact and
	// the same prompt still generates on retry.
	if !a.workspaces.BeginGeneration(sess.ClientID) {
		writeError(w, http.StatusConflict, "a generation is already in progress")
		return
	}
	defer a.workspaces.EndGeneration(sess.ClientID)

	if !a.workspaces.SetPrompt(sess.ClientID, req.Prompt) {
		writeJSON(w, http.StatusOK, map[string]any{"changed": false})
		return
	}

	a.runGeneration(w, r, req.Prompt)
}

// runGeneration is the shared tail of both trigger paths. The in-flight
// flag is already held by the caller.
func (a *API) runGeneration(w http.ResponseWriter, r *http.Request, prompt string) {
	sess := a.sess(r)
	ctx := r.Context()

	settings, err := a.settingsStore.Find(sess.ClientID)
	if err != nil {
		slog.Error("settings lookup failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}

	a.workspaces.Clear(sess.ClientID)

	gen, err := a.orchestrator.Generate(ctx, prompt, settings)
	if err != nil {
		var missing *generator.MissingCredentialError
		switch {
		case errors.Is(err, generator.ErrEmptyPrompt):
			writeError(w, http.StatusUnprocessableEntity, "prompt is empty")
		case errors.As(err, &missing):
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("no API key stored for provider %q", missing.Provider))
		default:
			slog.Error("generation failed", "client_id", sess.ClientID, "error", err)
			writeError(w, http.StatusInternalServerError, "generation failed")
		}
		return
	}

	a.workspaces.Apply(sess.ClientID, gen)

	if _, err := a.snapshotStore.Create(&models.Snapshot{
		ClientID:    sess.ClientID,
		Prompt:      prompt,
		Provider:    settings.SelectedProvider,
		HTML:        gen.HTML,
		CSS:         gen.CSS,
		JS:          gen.JS,
		Description: gen.Description,
	}); err != nil {
		// History is best-effort; the generation itself succeeded.
		slog.Warn("snapshot record failed", "client_id", sess.ClientID, "error", err)
	}

	token, _ := a.previews.CurrentToken(sess.ClientID)
	writeJSON(w, http.StatusOK, generateResponse{Generation: gen, PreviewToken: token})
}
