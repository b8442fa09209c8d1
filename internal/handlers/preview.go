// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// emptyPreview is served when the client has no renderable content. It
// mirrors what the editor shows before the first generation.
const emptyPreview = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Preview</title>
<style>
body { display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; font-family: system-ui, sans-serif; color: #64748b; background: #f8fafc; }
</style>
</head>
<body>
<p>No preview available yet. Generate a website to see it here.</p>
</body>
</html>
`

// Preview handles GET /preview: redirects to the client's current
// resource, or serves the empty-state placeholder when there is none.
func (a *API) Preview(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	if token, ok := a.previews.CurrentToken(sess.ClientID); ok {
		http.Redirect(w, r, "/preview/"+token, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(emptyPreview))
}

// PreviewResource handles GET /preview/{token}: one rendered document.
// The sandbox policy gives the document a unique origin, so user-supplied
// scripts run without this origin's cookies or API access. Superseded
// tokens keep resolving briefly; after that, 404.
func (a *API) PreviewResource(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.previews.Resource(chi.URLParam(r, "token"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(doc)
}

// RefreshPreview handles POST /api/preview/refresh: an explicit rotation
// request from the editor's refresh button.
func (a *API) RefreshPreview(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	token := a.previews.Refresh(sess.ClientID, a.workspaces.Snapshot(sess.ClientID))
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// PreviewSocket handles GET /ws/preview: the push channel that tells open
// preview surfaces to reload when the resource rotates.
func (a *API) PreviewSocket(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)
	a.hub.Serve(w, r, sess.ClientID)
}
