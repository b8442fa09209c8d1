// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"websmith/internal/ai"
	"websmith/internal/database"
	"websmith/internal/generator"
	"websmith/internal/middleware"
	"websmith/internal/preview"
	"websmith/internal/secrets"
	"websmith/internal/session"
	"websmith/internal/store"
	"websmith/internal/workspace"
)

// mockProvider implements ai.Provider for handler tests.
type mockProvider struct {
	response string
	err      error
	calls    int
}

func (m *mockProvider) Name() string { return "gemini" }

func (m *mockProvider) Generate(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "websmith")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "websmith")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Workspaces    *workspace.Manager
	Previews      *preview.Synchronizer
	Registry      *ai.Registry
	Provider      *mockProvider
	SettingsStore *store.SettingsStore
	SnapshotStore *store.SnapshotStore
	API           *API
}

// newTestEnv creates a complete test environment. The remote "gemini"
// provider is a mock; the generation cache, websocket hub, and object
// storage are disabled.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	box, err := secrets.New("")
	if err != nil {
		t.Fatalf("secrets.New: %v", err)
	}
	settingsStore := store.NewSettingsStore(db, box)
	snapshotStore := store.NewSnapshotStore(db)

	provider := &mockProvider{response: `{"html":"<h1>r</h1>","css":"h1{}","javascript":"","description":"remote"}`}
	registry := ai.NewRegistry(nil)
	registry.Register("gemini", func(cfg ai.Config, apiKey string) ai.Provider { return provider })

	workspaces := workspace.NewManager()
	previews := preview.NewSynchronizer(10*time.Millisecond, nil)
	workspaces.OnChange(previews.Sync)

	orchestrator := generator.New(registry, nil)
	api := New(workspaces, previews, nil, orchestrator, registry,
		settingsStore, snapshotStore, nil, "http://localhost:8080")

	return &testEnv{
		DB:            db,
		Workspaces:    workspaces,
		Previews:      previews,
		Registry:      registry,
		Provider:      provider,
		SettingsStore: settingsStore,
		SnapshotStore: snapshotStore,
		API:           api,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// newClientRequest builds a request carrying a fresh client's session.
func newClientRequest(r *http.Request, clientID uuid.UUID) *http.Request {
	return r.WithContext(ctxWithSession(r.Context(), &session.Data{
		ClientID:  clientID,
		CreatedAt: time.Now(),
	}))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanClient removes a test client's persisted rows.
func cleanClient(t *testing.T, db *sql.DB, clientID uuid.UUID) {
	t.Helper()
	db.Exec("DELETE FROM snapshots WHERE client_id = $1", clientID)
	db.Exec("DELETE FROM settings WHERE client_id = $1", clientID)
}
