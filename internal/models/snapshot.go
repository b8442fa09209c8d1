// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one entry in a client's generation history: the prompt that
// was submitted, the provider that answered it, and the three source
// buffers that came back. Snapshots are immutable once written.
type Snapshot struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	Prompt      string    `json:"prompt"`
	Provider    string    `json:"provider"`
	HTML        string    `json:"html"`
	CSS         string    `json:"css"`
	JS          string    `json:"javascript"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Generation converts the snapshot back into a generation result, e.g.
// when restoring it into the workspace.
func (s *Snapshot) Generation() Generation {
	return Generation{
		HTML:        s.HTML,
		CSS:         s.CSS,
		JS:          s.JS,
		Description: s.Description,
	}
}
