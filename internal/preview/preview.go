// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package preview keeps each client's rendered preview in sync with their
// workspace. Every buffer change produces a new renderable resource (an
// assembled document behind a fresh token); the previous resource is
// released only after a grace period, so a surface that already received
// the new token can still finish loading the old one.
package preview

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"websmith/internal/assemble"
	"websmith/internal/workspace"
)

// DefaultGrace is how long a superseded resource stays retrievable after
// its replacement has been handed off.
const DefaultGrace = time.Second

// resource is one renderable document plus its owner.
type resource struct {
	clientID uuid.UUID
	document []byte
}

// Synchronizer manages the renderable resource lifecycle. Exactly one
// resource is current per client; rotation schedules release of the
// predecessor.
type Synchronizer struct {
	mu        sync.Mutex
	current   map[uuid.UUID]string
	resources map[string]*resource
	grace     time.Duration
	notifier  Notifier
}

// Notifier receives rotation events so connected preview surfaces can
// reload. A nil notifier disables push updates.
type Notifier interface {
	NotifyRefresh(clientID uuid.UUID, token string)
	NotifyEmpty(clientID uuid.UUID)
}

// NewSynchronizer creates a synchronizer with the given release grace
// period (0 means DefaultGrace).
func NewSynchronizer(grace time.Duration, notifier Notifier) *Synchronizer {
	if grace == 0 {
		grace = DefaultGrace
	}
	return &Synchronizer{
		current:   make(map[uuid.UUID]string),
		resources: make(map[string]*resource),
		grace:     grace,
		notifier:  notifier,
	}
}

// Sync is the workspace change listener: it assembles the new state and
// rotates the client's resource. An all-empty state produces no resource;
// the preview endpoint then serves the empty-state placeholder.
func (s *Synchronizer) Sync(clientID uuid.UUID, st workspace.State) {
	if st.Empty() {
		s.mu.Lock()
		prev, had := s.current[clientID]
		delete(s.current, clientID)
		s.mu.Unlock()

		if had {
			s.scheduleRelease(prev)
		}
		if s.notifier != nil {
			s.notifier.NotifyEmpty(clientID)
		}
		return
	}

	doc := assemble.Document(st.HTML, st.CSS, st.JS)
	token := uuid.New().String()

	s.mu.Lock()
	prev, had := s.current[clientID]
	s.current[clientID] = token
	s.resources[token] = &resource{clientID: clientID, document: []byte(doc)}
	s.mu.Unlock()

	if had {
		s.scheduleRelease(prev)
	}
	if s.notifier != nil {
		s.notifier.NotifyRefresh(clientID, token)
	}
}

// Refresh re-runs the rotation for an explicit refresh request and returns
// the new token, or "" when the state is empty.
func (s *Synchronizer) Refresh(clientID uuid.UUID, st workspace.State) string {
	s.Sync(clientID, st)
	token, _ := s.CurrentToken(clientID)
	return token
}

// CurrentToken returns the client's live resource token, if any.
func (s *Synchronizer) CurrentToken(clientID uuid.UUID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.current[clientID]
	return token, ok
}

// Resource returns the document behind a token. Superseded tokens keep
// resolving until their grace period expires.
func (s *Synchronizer) Resource(token string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.resources[token]
	if !ok {
		return nil, false
	}
	return res.document, true
}

// scheduleRelease reclaims a superseded resource after the grace period.
func (s *Synchronizer) scheduleRelease(token string) {
	time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.resources, token)
	})
}

// Live reports how many resources are currently retrievable. Used by
// tests to observe release behaviour.
func (s *Synchronizer) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resources)
}
