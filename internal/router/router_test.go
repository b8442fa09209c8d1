// Package router tests verify the routing table without exercising the
// handlers themselves; handler behaviour is covered by the handlers
// package tests.
package router

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"websmith/internal/handlers"
	"websmith/internal/session"
)

func routeSet(t *testing.T) map[string]bool {
	t.Helper()

	api := handlers.New(nil, nil, nil, nil, nil, nil, nil, nil, "")
	r := New(session.NewStore(nil, false), api)

	routes := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}
	return routes
}

func TestRoutesRegistered(t *testing.T) {
	routes := routeSet(t)

	want := []string{
		"GET /health",
		"POST /api/generate",
		"POST /api/prompt",
		"GET /api/code/",
		"PUT /api/code/",
		"POST /api/code/clear",
		"GET /api/settings/",
		"PUT /api/settings/",
		"GET /api/snapshots/",
		"GET /api/snapshots/{id}",
		"POST /api/snapshots/{id}/restore",
		"POST /api/preview/refresh",
		"GET /api/templates",
		"GET /api/examples",
		"GET /preview",
		"GET /preview/{token}",
		"GET /ws/preview",
		"GET /export/zip",
		"GET /export/source",
		"GET /export/document",
		"GET /export/qr",
		"POST /export/publish",
		"POST /export/unpublish",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route not registered: %s", route)
		}
	}
}
