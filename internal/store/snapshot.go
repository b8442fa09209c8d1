// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"websmith/internal/models"
)

// SnapshotStore handles the generation history.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore creates a SnapshotStore with the given connection.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Create inserts a new snapshot and returns it with its generated id and
// timestamp filled in.
func (s *SnapshotStore) Create(snap *models.Snapshot) (*models.Snapshot, error) {
	result := &models.Snapshot{}
	err := s.db.QueryRow(`
		INSERT INTO snapshots (client_id, prompt, provider, html, css, js, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, client_id, prompt, provider, html, css, js, description, created_at
	`, snap.ClientID, snap.Prompt, snap.Provider, snap.HTML, snap.CSS, snap.JS, snap.Description).Scan(
		&result.ID, &result.ClientID, &result.Prompt, &result.Provider,
		&result.HTML, &result.CSS, &result.JS, &result.Description, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	return result, nil
}

// ListByClient returns a client's snapshots, newest first, up to limit.
// The code buffers are included; history entries are small enough that a
// separate detail fetch isn't worth the round trip.
func (s *SnapshotStore) ListByClient(clientID uuid.UUID, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, client_id, prompt, provider, html, css, js, description, created_at
		FROM snapshots
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []models.Snapshot
	for rows.Next() {
		var snap models.Snapshot
		if err := rows.Scan(
			&snap.ID, &snap.ClientID, &snap.Prompt, &snap.Provider,
			&snap.HTML, &snap.CSS, &snap.JS, &snap.Description, &snap.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// FindByID retrieves one snapshot scoped to its owner. Returns nil when
// it does not exist or belongs to another client.
func (s *SnapshotStore) FindByID(clientID, id uuid.UUID) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	err := s.db.QueryRow(`
		SELECT id, client_id, prompt, provider, html, css, js, description, created_at
		FROM snapshots WHERE id = $1 AND client_id = $2
	`, id, clientID).Scan(
		&snap.ID, &snap.ClientID, &snap.Prompt, &snap.Provider,
		&snap.HTML, &snap.CSS, &snap.JS, &snap.Description, &snap.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot by id: %w", err)
	}
	return snap, nil
}
