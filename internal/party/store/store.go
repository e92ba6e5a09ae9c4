package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCanonical(ctx context.Context, ownerID uuid.UUID, rawName string) (string, error) {
	query := `
		SELECT canonical_name
		FROM party_mappings
		WHERE owner_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var canonical string

	err := s.db.QueryRowContext(ctx, query, ownerID, rawName).Scan(&canonical)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding canonical name: %w", err)
	}

	return canonical, nil
}

func (s *Store) CreateMapping(ctx context.Context, ownerID uuid.UUID, rawPattern, canonicalName string) error {
	query := `
		INSERT INTO party_mappings (owner_id, raw_pattern, canonical_name, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, ownerID, rawPattern, canonicalName)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
