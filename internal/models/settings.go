// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderLocal is the built-in template-based generator. It needs no
// credential and never fails, which also makes it the fallback target for
// every remote provider error.
const ProviderLocal = "local"

// Settings holds a client's provider selection and stored credentials.
// Credentials are encrypted at rest; the plaintext values in this struct
// only exist in memory between load and use.
type Settings struct {
	ClientID         uuid.UUID         `json:"client_id"`
	SelectedProvider string            `json:"selected_provider"`
	Credentials      map[string]string `json:"-"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// DefaultSettings returns the settings used before a client has saved any:
// local generation, no credentials.
func DefaultSettings(clientID uuid.UUID) *Settings {
	return &Settings{
		ClientID:         clientID,
		SelectedProvider: ProviderLocal,
		Credentials:      map[string]string{},
	}
}

// Credential returns the stored secret for a provider, or "" if none.
func (s *Settings) Credential(provider string) string {
	if s.Credentials == nil {
		return ""
	}
	return s.Credentials[provider]
}
