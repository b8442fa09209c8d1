// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workspace holds each client's editable code buffers: the three
// sources (html, css, javascript) plus the prompt that produced them. It is
// the single shared mutable state between the editor endpoints, the preview
// synchronizer, and the export surface. One logical writer runs at a time
// per client; the in-flight flag makes that an enforced invariant for
// generation rather than an accidental one.
package workspace

import (
	"sync"

	"github.com/google/uuid"

	"websmith/internal/models"
)

// State is a full snapshot of one client's buffers. Reads always see a
// fully populated (possibly stale) copy; fields are replaced whole, so
// there is no torn-read risk.
type State struct {
	HTML         string `json:"html"`
	CSS          string `json:"css"`
	JS           string `json:"javascript"`
	ActivePrompt string `json:"active_prompt"`
}

// Empty reports whether all three code buffers are blank.
func (s State) Empty() bool {
	return s.HTML == "" && s.CSS == "" && s.JS == ""
}

// clientState is the mutable per-client record.
type clientState struct {
	mu         sync.Mutex
	state      State
	generating bool
}

// Manager owns all client workspaces. State lives in process memory and is
// destroyed with it; the session cookie is what ties a client back to its
// workspace across requests.
type Manager struct {
	mu       sync.Mutex
	clients  map[uuid.UUID]*clientState
	onChange func(clientID uuid.UUID, s State)
}

// NewManager creates an empty workspace manager.
func NewManager() *Manager {
	return &Manager{clients: make(map[uuid.UUID]*clientState)}
}

// OnChange registers the single change listener (the preview
// synchronizer). The listener is invoked after every buffer mutation with
// a snapshot of the new state; it must not call back into the manager.
func (m *Manager) OnChange(fn func(clientID uuid.UUID, s State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// client returns the record for clientID, creating it on first use.
func (m *Manager) client(clientID uuid.UUID) *clientState {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[clientID]
	if !ok {
		c = &clientState{}
		m.clients[clientID] = c
	}
	return c
}

// Snapshot returns a copy of the client's current state.
func (m *Manager) Snapshot(clientID uuid.UUID) State {
	c := m.client(clientID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Update replaces one source buffer. The value itself is not validated;
// whatever the user typed is what the preview renders.
func (m *Manager) Update(clientID uuid.UUID, field models.Field, value string) {
	c := m.client(clientID)
	c.mu.Lock()
	switch field {
	case models.FieldHTML:
		c.state.HTML = value
	case models.FieldCSS:
		c.state.CSS = value
	case models.FieldJS:
		c.state.JS = value
	}
	snap := c.state
	c.mu.Unlock()

	m.notify(clientID, snap)
}

// Clear blanks all three buffers. The active prompt is left untouched so
// its change-trigger semantics are unaffected. Used before a generation
// starts so stale content never shows during the wait.
func (m *Manager) Clear(clientID uuid.UUID) {
	c := m.client(clientID)
	c.mu.Lock()
	c.state.HTML = ""
	c.state.CSS = ""
	c.state.JS = ""
	snap := c.state
	c.mu.Unlock()

	m.notify(clientID, snap)
}

// Apply replaces all three buffers from a generation result in one step.
func (m *Manager) Apply(clientID uuid.UUID, gen models.Generation) {
	c := m.client(clientID)
	c.mu.Lock()
	c.state.HTML = gen.HTML
	c.state.CSS = gen.CSS
	c.state.JS = gen.JS
	snap := c.state
	c.mu.Unlock()

	m.notify(clientID, snap)
}

// SetPrompt records the prompt and reports whether it differs from the
// previously recorded one. Only a changed prompt triggers generation on
// the input surface; submitting the identical prompt twice is a no-op the
// second time. That makes re-clicking the same example prompt do nothing
// after the first click — a known limitation, kept as-is.
func (m *Manager) SetPrompt(clientID uuid.UUID, text string) bool {
	c := m.client(clientID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.ActivePrompt == text {
		return false
	}
	c.state.ActivePrompt = text
	return true
}

// BeginGeneration marks a generation as in flight for the client. Returns
// false if one already is; the caller must then reject the request, which
// keeps "at most one generation in flight" true per client.
func (m *Manager) BeginGeneration(clientID uuid.UUID) bool {
	c := m.client(clientID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generating {
		return false
	}
	c.generating = true
	return true
}

// EndGeneration clears the in-flight flag.
func (m *Manager) EndGeneration(clientID uuid.UUID) {
	c := m.client(clientID)
	c.mu.Lock()
	c.generating = false
	c.mu.Unlock()
}

// Generating reports whether a generation is in flight for the client.
func (m *Manager) Generating(clientID uuid.UUID) bool {
	c := m.client(clientID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

func (m *Manager) notify(clientID uuid.UUID, snap State) {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(clientID, snap)
	}
}
