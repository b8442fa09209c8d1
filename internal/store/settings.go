// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer: per-client
// provider settings and the generation history.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"websmith/internal/models"
	"websmith/internal/secrets"
)

// SettingsStore handles per-client provider settings. Credentials pass
// through the secrets box on the way in and out, so only sealed values
// ever touch the database.
type SettingsStore struct {
	db  *sql.DB
	box *secrets.Box
}

// NewSettingsStore creates a SettingsStore with the given connection and
// credential box.
func NewSettingsStore(db *sql.DB, box *secrets.Box) *SettingsStore {
	return &SettingsStore{db: db, box: box}
}

// Find retrieves a client's settings. Returns the defaults (local
// provider, no credentials) when the client has never saved any.
func (s *SettingsStore) Find(clientID uuid.UUID) (*models.Settings, error) {
	var (
		result  = &models.Settings{ClientID: clientID}
		credRaw []byte
	)
	err := s.db.QueryRow(`
		SELECT selected_provider, credentials, updated_at
		FROM settings WHERE client_id = $1
	`, clientID).Scan(&result.SelectedProvider, &credRaw, &result.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(clientID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}

	sealed := map[string]string{}
	if err := json.Unmarshal(credRaw, &sealed); err != nil {
		return nil, fmt.Errorf("decode settings credentials: %w", err)
	}

	result.Credentials = make(map[string]string, len(sealed))
	for provider, value := range sealed {
		plain, err := s.box.Open(value)
		if err != nil {
			return nil, fmt.Errorf("unseal credential for %s: %w", provider, err)
		}
		result.Credentials[provider] = plain
	}
	return result, nil
}

// Save upserts a client's settings, sealing every credential first.
// Persisted immediately on each call; there is no write-behind.
func (s *SettingsStore) Save(settings *models.Settings) error {
	sealed := make(map[string]string, len(settings.Credentials))
	for provider, value := range settings.Credentials {
		box, err := s.box.Seal(value)
		if err != nil {
			return fmt.Errorf("seal credential for %s: %w", provider, err)
		}
		sealed[provider] = box
	}

	credRaw, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("encode settings credentials: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO settings (client_id, selected_provider, credentials, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (client_id) DO UPDATE SET
			selected_provider = EXCLUDED.selected_provider,
			credentials = EXCLUDED.credentials,
			updated_at = NOW()
	`, settings.ClientID, settings.SelectedProvider, credRaw)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
