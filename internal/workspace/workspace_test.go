// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workspace

import (
	"testing"

	"github.com/google/uuid"

	"websmith/internal/models"
)

func TestSnapshotStartsEmpty(t *testing.T) {
	m := NewManager()
	st := m.Snapshot(uuid.New())

	if !st.Empty() {
		t.Errorf("fresh workspace should be empty: %+v", st)
	}
	if st.ActivePrompt != "" {
		t.Errorf("fresh workspace has prompt %q", st.ActivePrompt)
	}
}

func TestUpdateReplacesSingleBuffer(t *testing.T) {
	m := NewManager()
	id := uuid.New()

	m.Update(id, models.FieldHTML, "<p>a</p>")
	m.Update(id, models.FieldCSS, "p{}")
	m.Update(id, models.FieldJS, "f()")
	m.Update(id, models.FieldCSS, "p{color:red}")

	st := m.Snapshot(id)
	if st.HTML != "<p>a</p>" || st.CSS != "p{color:red}" || st.JS != "f()" {
		t.Errorf("buffers: %+v", st)
	}
}

func TestClearPreservesPrompt(t *testing.T) {
	m := NewManager()
	id := uuid.New()

	m.SetPrompt(id, "a shop")
	m.Update(id, models.FieldHTML, "<p>a</p>")
	m.Clear(id)

	st := m.Snapshot(id)
	if !st.Empty() {
		t.Errorf("buffers should be blank after Clear: %+v", st)
	}
	if st.ActivePrompt != "a shop" {
		t.Errorf("Clear must not touch the prompt, got %q", st.ActivePrompt)
	}
}

func TestApplyReplacesAllBuffers(t *testing.T) {
	m := NewManager()
	id := uuid.New()

	m.Update(id, models.FieldJS, "old()")
	m.Apply(id, models.Generation{HTML: "<p>n</p>", CSS: "p{}", Description: "d"})

	st := m.Snapshot(id)
	if st.HTML != "<p>n</p>" || st.CSS != "p{}" || st.JS != "" {
		t.Errorf("buffers after Apply: %+v", st)
	}
}

// SetPrompt reports a change only when the text differs from the stored
// prompt; submitting the identical prompt again reports false.
func TestSetPromptChangeDetection(t *testing.T) {
	m := NewManager()
	id := uuid.New()

	if !m.SetPrompt(id, "a blog") {
		t.Error("first SetPrompt should report a change")
	}
	if m.SetPrompt(id, "a blog") {
		t.Error("identical prompt should report no change")
	}
	if !m.SetPrompt(id, "a shop") {
		t.Error("different prompt should report a change")
	}
}

func TestGenerationInFlightFlag(t *testing.T) {
	m := NewManager()
	id := uuid.New()

	if !m.BeginGeneration(id) {
		t.Fatal("first BeginGeneration should succeed")
	}
	if m.BeginGeneration(id) {
		t.Error("second BeginGeneration should be rejected while in flight")
	}
	if !m.Generating(id) {
		t.Error("Generating should report true while in flight")
	}

	// Other clients are unaffected.
	other := uuid.New()
	if !m.BeginGeneration(other) {
		t.Error("in-flight flag must be per client")
	}

	m.EndGeneration(id)
	if m.Generating(id) {
		t.Error("Generating should report false after EndGeneration")
	}
	if !m.BeginGeneration(id) {
		t.Error("BeginGeneration should succeed again after EndGeneration")
	}
}

// Every buffer mutation notifies the change listener with the new state;
// SetPrompt and the in-flight flag do not.
func TestOnChangeNotifications(t *testing.T) {
	m := NewManager()
	id := uuid.New()

	var events []State
	m.OnChange(func(clientID uuid.UUID, s State) {
		if clientID != id {
			t.Errorf("notification for wrong client %s", clientID)
		}
		events = append(events, s)
	})

	m.Update(id, models.FieldHTML, "<p>a</p>")
	m.Apply(id, models.Generation{HTML: "<p>b</p>"})
	m.Clear(id)
	m.SetPrompt(id, "no notification for this")
	m.BeginGeneration(id)
	m.EndGeneration(id)

	if len(events) != 3 {
		t.Fatalf("notifications: got %d, want 3", len(events))
	}
	if events[0].HTML != "<p>a</p>" || events[1].HTML != "<p>b</p>" || !events[2].Empty() {
		t.Errorf("notification payloads: %+v", events)
	}
}

func TestClientsAreIsolated(t *testing.T) {
	m := NewManager()
	a, b := uuid.New(), uuid.New()

	m.Update(a, models.FieldHTML, "<p>a</p>")

	if !m.Snapshot(b).Empty() {
		t.Error("one client's edits must not leak into another's workspace")
	}
}
