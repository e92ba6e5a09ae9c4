package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"chequetrack/internal/cheque"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectChequeColumns = `
	c.id, c.owner_id, c.party_name, c.cheque_number, c.bank_name, c.amount,
	c.issue_date, c.due_date, c.status,
	c.bounce_reason, c.bounce_date, c.bounce_remarks, c.recovery_status,
	c.created_at, c.updated_at
`

// scanCheque reads a cheque row in selectChequeColumns order.
func scanCheque(s scanner) (*cheque.Cheque, error) {
	var c cheque.Cheque

	var statusStr string

	var (
		bounceReason   sql.NullString
		bounceDate     sql.NullTime
		bounceRemarks  sql.NullString
		recoveryStatus sql.NullString
		dueDate        sql.NullTime
	)

	if err := s.Scan(
		&c.ID, &c.OwnerID, &c.PartyName, &c.ChequeNumber, &c.BankName, &c.Amount,
		&c.IssueDate, &dueDate, &statusStr,
		&bounceReason, &bounceDate, &bounceRemarks, &recoveryStatus,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = cheque.Status(statusStr)

	if dueDate.Valid {
		c.DueDate = &dueDate.Time
	}

	if bounceReason.Valid {
		r := cheque.BounceReason(bounceReason.String)
		c.BounceReason = &r
	}

	if bounceDate.Valid {
		c.BounceDate = &bounceDate.Time
	}

	if bounceRemarks.Valid {
		c.BounceRemarks = &bounceRemarks.String
	}

	if recoveryStatus.Valid {
		rs := cheque.RecoveryStatus(recoveryStatus.String)
		c.RecoveryStatus = &rs
	}

	return &c, nil
}

func (s *Store) CreateCheque(ctx context.Context, c *cheque.Cheque) error {
	query := `
		INSERT INTO cheques (owner_id, party_name, cheque_number, bank_name, amount, issue_date, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.OwnerID,
		c.PartyName,
		c.ChequeNumber,
		c.BankName,
		c.Amount,
		c.IssueDate,
		c.DueDate,
		c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating cheque: %w", err)
	}

	return nil
}

func (s *Store) GetCheque(ctx context.Context, id uuid.UUID) (*cheque.Cheque, error) {
	query := `SELECT ` + selectChequeColumns + ` FROM cheques c WHERE c.id = $1`

	c, err := scanCheque(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cheque.ErrNotFound
		}

		return nil, fmt.Errorf("getting cheque: %w", err)
	}

	return c, nil
}

func (s *Store) ListCheques(ctx context.Context, ownerID uuid.UUID, filter cheque.ListFilter) ([]*cheque.Cheque, error) {
	query := `SELECT ` + selectChequeColumns + ` FROM cheques c WHERE c.owner_id = $1`

	args := []any{ownerID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (c.party_name ILIKE $%d OR c.cheque_number ILIKE $%d OR c.bank_name ILIKE $%d)", argIdx, argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY c.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cheques: %w", err)
	}
	defer rows.Close()

	var cheques []*cheque.Cheque

	for rows.Next() {
		c, err := scanCheque(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cheque: %w", err)
		}

		cheques = append(cheques, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cheque rows: %w", err)
	}

	return cheques, nil
}

func (s *Store) UpdateCheque(ctx context.Context, c *cheque.Cheque) error {
	query := `
		UPDATE cheques
		SET party_name = $1, cheque_number = $2, bank_name = $3, amount = $4,
			issue_date = $5, due_date = $6, status = $7,
			bounce_reason = $8, bounce_date = $9, bounce_remarks = $10, recovery_status = $11,
			updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.PartyName,
		c.ChequeNumber,
		c.BankName,
		c.Amount,
		c.IssueDate,
		c.DueDate,
		c.Status,
		bounceReasonArg(c.BounceReason),
		c.BounceDate,
		c.BounceRemarks,
		recoveryStatusArg(c.RecoveryStatus),
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return cheque.ErrNotFound
		}

		return fmt.Errorf("updating cheque: %w", err)
	}

	return nil
}

// DeleteCheque removes the cheque and its follow-ups in one database
// transaction so no reader ever observes orphaned follow-ups.
func (s *Store) DeleteCheque(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM follow_ups WHERE cheque_id = $1`, id); err != nil {
		return fmt.Errorf("deleting follow-ups: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM cheques WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting cheque: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if affected == 0 {
		return cheque.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}

func (s *Store) FindByNumbers(ctx context.Context, ownerID uuid.UUID, numbers []string) ([]*cheque.Cheque, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(numbers))
	args := []any{ownerID}

	for i, n := range numbers {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, n)
	}

	query := `SELECT ` + selectChequeColumns + ` FROM cheques c
		WHERE c.owner_id = $1 AND c.cheque_number IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding cheques by number: %w", err)
	}
	defer rows.Close()

	var cheques []*cheque.Cheque

	for rows.Next() {
		c, err := scanCheque(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cheque: %w", err)
		}

		cheques = append(cheques, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cheque rows: %w", err)
	}

	return cheques, nil
}

func (s *Store) CreateCheques(ctx context.Context, cheques []*cheque.Cheque) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cheques (owner_id, party_name, cheque_number, bank_name, amount, issue_date, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, c := range cheques {
		err := tx.QueryRowContext(ctx, query,
			c.OwnerID,
			c.PartyName,
			c.ChequeNumber,
			c.BankName,
			c.Amount,
			c.IssueDate,
			c.DueDate,
			c.Status,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating cheque: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}

// The enum columns reject empty strings, so nil pointers must stay NULL on
// the wire rather than being coerced to "".
func bounceReasonArg(r *cheque.BounceReason) any {
	if r == nil {
		return nil
	}

	return string(*r)
}

func recoveryStatusArg(rs *cheque.RecoveryStatus) any {
	if rs == nil {
		return nil
	}

	return string(*rs)
}
