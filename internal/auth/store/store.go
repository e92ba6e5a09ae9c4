package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"chequetrack/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// uniqueViolation is the postgres error code raised on duplicate emails.
const uniqueViolation = "23505"

func (s *Store) CreateOwner(ctx context.Context, o *auth.Owner) error {
	query := `
		INSERT INTO owners (email, password_hash, full_name, company_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.Email,
		o.PasswordHash,
		o.FullName,
		o.CompanyName,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrEmailTaken
		}

		return fmt.Errorf("creating owner: %w", err)
	}

	return nil
}

func (s *Store) GetOwnerByEmail(ctx context.Context, email string) (*auth.Owner, error) {
	return s.getOwner(ctx, `WHERE email = $1`, email)
}

func (s *Store) GetOwner(ctx context.Context, id uuid.UUID) (*auth.Owner, error) {
	return s.getOwner(ctx, `WHERE id = $1`, id)
}

func (s *Store) getOwner(ctx context.Context, where string, arg any) (*auth.Owner, error) {
	query := `
		SELECT id, email, password_hash, full_name, company_name, created_at, updated_at
		FROM owners ` + where

	var o auth.Owner

	var fullName, companyName sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.Email, &o.PasswordHash, &fullName, &companyName, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("getting owner: %w", err)
	}

	if fullName.Valid {
		o.FullName = &fullName.String
	}

	if companyName.Valid {
		o.CompanyName = &companyName.String
	}

	return &o, nil
}
