// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"websmith/internal/catalog"
)

// Health handles GET /health.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type templateInfo struct {
	ID    catalog.TemplateID `json:"id"`
	Label string             `json:"label"`
}

// Templates handles GET /api/templates: the built-in template catalog.
func (a *API) Templates(w http.ResponseWriter, r *http.Request) {
	ids := catalog.IDs()
	out := make([]templateInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, templateInfo{ID: id, Label: catalog.Get(id).Label})
	}
	writeJSON(w, http.StatusOK, out)
}

// examplePrompts seed the editor's quick-start list. Each one lands on a
// different template when generated locally.
var examplePrompts = []string{
	"Create a modern portfolio website for a web developer",
	"Build an e-commerce store for handmade jewelry",
	"Design a photography portfolio with a gallery",
	"Make a personal blog about travel and food",
	"Create a team page for a startup",
	"Build a creative agency landing page",
	"Design a Netflix-style streaming site for indie films",
}

// Examples handles GET /api/examples.
func (a *API) Examples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, examplePrompts)
}
