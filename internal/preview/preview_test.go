// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package preview

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"websmith/internal/workspace"
)

// recordingNotifier captures rotation events for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	refresh []string
	empty   int
}

func (n *recordingNotifier) NotifyRefresh(clientID uuid.UUID, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refresh = append(n.refresh, token)
}

func (n *recordingNotifier) NotifyEmpty(clientID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.empty++
}

func TestSyncCreatesResource(t *testing.T) {
	s := NewSynchronizer(time.Hour, nil)
	id := uuid.New()

	s.Sync(id, workspace.State{HTML: "<p>x</p>", CSS: "p{}", JS: "f()"})

	token, ok := s.CurrentToken(id)
	if !ok {
		t.Fatal("expected a current token after Sync")
	}
	doc, ok := s.Resource(token)
	if !ok {
		t.Fatal("current token should resolve to a resource")
	}
	for _, part := range []string{"<p>x</p>", "p{}", "f()"} {
		if !strings.Contains(string(doc), part) {
			t.Errorf("document missing %q", part)
		}
	}
}

// An all-empty state produces no resource at all, not a blank document.
func TestSyncEmptyStateProducesNoResource(t *testing.T) {
	n := &recordingNotifier{}
	s := NewSynchronizer(time.Hour, n)
	id := uuid.New()

	s.Sync(id, workspace.State{})

	if _, ok := s.CurrentToken(id); ok {
		t.Error("empty state must not have a current token")
	}
	if n.empty != 1 {
		t.Errorf("empty notifications: got %d, want 1", n.empty)
	}
	if len(n.refresh) != 0 {
		t.Errorf("refresh notifications: got %d, want 0", len(n.refresh))
	}
}

// The prompt alone does not make a state renderable.
func TestSyncPromptOnlyStateIsEmpty(t *testing.T) {
	s := NewSynchronizer(time.Hour, nil)
	id := uuid.New()

	s.Sync(id, workspace.State{ActivePrompt: "a shop"})

	if _, ok := s.CurrentToken(id); ok {
		t.Error("prompt-only state must not have a current token")
	}
}

func TestSyncRotatesToken(t *testing.T) {
	n := &recordingNotifier{}
	s := NewSynchronizer(time.Hour, n)
	id := uuid.New()

	s.Sync(id, workspace.State{HTML: "<p>1</p>"})
	first, _ := s.CurrentToken(id)

	s.Sync(id, workspace.State{HTML: "<p>2</p>"})
	second, _ := s.CurrentToken(id)

	if first == second {
		t.Error("each rotation should mint a fresh token")
	}
	if len(n.refresh) != 2 || n.refresh[1] != second {
		t.Errorf("refresh notifications: %v", n.refresh)
	}

	// The superseded resource stays retrievable during the grace period.
	if _, ok := s.Resource(first); !ok {
		t.Error("superseded resource should survive until the grace period ends")
	}
}

func TestSupersededResourceReleasedAfterGrace(t *testing.T) {
	s := NewSynchronizer(10*time.Millisecond, nil)
	id := uuid.New()

	s.Sync(id, workspace.State{HTML: "<p>1</p>"})
	first, _ := s.CurrentToken(id)
	s.Sync(id, workspace.State{HTML: "<p>2</p>"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := s.Resource(first); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("superseded resource was never released")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if s.Live() != 1 {
		t.Errorf("live resources: got %d, want 1", s.Live())
	}
	if _, ok := s.CurrentToken(id); !ok {
		t.Error("current resource must survive the predecessor's release")
	}
}

func TestClearReleasesCurrentResource(t *testing.T) {
	n := &recordingNotifier{}
	s := NewSynchronizer(10*time.Millisecond, n)
	id := uuid.New()

	s.Sync(id, workspace.State{HTML: "<p>1</p>"})
	token, _ := s.CurrentToken(id)
	s.Sync(id, workspace.State{})

	if _, ok := s.CurrentToken(id); ok {
		t.Error("cleared client should have no current token")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := s.Resource(token); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cleared resource was never released")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRefreshReturnsToken(t *testing.T) {
	s := NewSynchronizer(time.Hour, nil)
	id := uuid.New()

	if token := s.Refresh(id, workspace.State{HTML: "<p>1</p>"}); token == "" {
		t.Error("Refresh should return the new token")
	}
	if token := s.Refresh(id, workspace.State{}); token != "" {
		t.Errorf("Refresh on empty state should return \"\", got %q", token)
	}
}

func TestClientsHaveIndependentResources(t *testing.T) {
	s := NewSynchronizer(time.Hour, nil)
	a, b := uuid.New(), uuid.New()

	s.Sync(a, workspace.State{HTML: "<p>a</p>"})
	s.Sync(b, workspace.State{HTML: "<p>b</p>"})

	ta, _ := s.CurrentToken(a)
	tb, _ := s.CurrentToken(b)
	if ta == tb {
		t.Error("clients must not share resource tokens")
	}

	s.Sync(a, workspace.State{})
	if _, ok := s.CurrentToken(b); !ok {
		t.Error("clearing one client must not drop another's resource")
	}
}
