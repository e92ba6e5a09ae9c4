package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"chequetrack/internal/followup"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateFollowUp(ctx context.Context, f *followup.FollowUp) error {
	query := `
		INSERT INTO follow_ups (owner_id, cheque_id, contact_date, next_follow_up_date, notes, action_taken, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		f.OwnerID,
		f.ChequeID,
		f.ContactDate,
		f.NextFollowUpDate,
		f.Notes,
		f.ActionTaken,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating follow-up: %w", err)
	}

	return nil
}

// ListFollowUps returns the cheque's follow-ups, most recent contact first.
// Ties on contact date fall back to creation order.
func (s *Store) ListFollowUps(ctx context.Context, chequeID uuid.UUID) ([]*followup.FollowUp, error) {
	query := `
		SELECT id, owner_id, cheque_id, contact_date, next_follow_up_date, notes, action_taken, created_at
		FROM follow_ups
		WHERE cheque_id = $1
		ORDER BY contact_date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, chequeID)
	if err != nil {
		return nil, fmt.Errorf("listing follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []*followup.FollowUp

	for rows.Next() {
		var f followup.FollowUp

		var (
			nextDate sql.NullTime
			notes    sql.NullString
			action   sql.NullString
		)

		if err := rows.Scan(
			&f.ID, &f.OwnerID, &f.ChequeID, &f.ContactDate,
			&nextDate, &notes, &action, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning follow-up: %w", err)
		}

		if nextDate.Valid {
			f.NextFollowUpDate = &nextDate.Time
		}

		if notes.Valid {
			f.Notes = &notes.String
		}

		if action.Valid {
			f.ActionTaken = &action.String
		}

		followUps = append(followUps, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating follow-up rows: %w", err)
	}

	return followUps, nil
}

func (s *Store) DeleteFollowUp(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM follow_ups WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting follow-up: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if affected == 0 {
		return followup.ErrNotFound
	}

	return nil
}
