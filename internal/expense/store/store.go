package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
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

const selectExpenseColumns = `
	id, description, date, cost_cents, deleted, created_at, updated_at
`

func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	if err := s.Scan(
		&e.ID, &e.Description, &e.Date, &e.Cost, &e.Deleted,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &e, nil
}

// ListExpenses returns the account's live records. Soft-deleted rows are
// filtered here, at the query boundary, so callers never see them. The
// returned order is storage order; display order is the caller's problem.
func (s *Store) ListExpenses(ctx context.Context, accountID uuid.UUID) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE account_id = $1 AND NOT deleted
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return out, nil
}

func (s *Store) CreateExpense(ctx context.Context, accountID uuid.UUID, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (account_id, description, date, cost_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		accountID,
		e.Description,
		e.Date,
		e.Cost,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, accountID, id uuid.UUID, patch expense.Patch) error {
	query := `
		UPDATE expenses
		SET description = COALESCE($1, description),
		    date = COALESCE($2, date),
		    cost_cents = COALESCE($3, cost_cents),
		    updated_at = NOW()
		WHERE account_id = $4 AND id = $5 AND NOT deleted
	`

	res, err := s.db.ExecContext(ctx, query,
		patch.Description,
		patch.Date,
		patch.Cost,
		accountID,
		id,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func (s *Store) SoftDeleteExpense(ctx context.Context, accountID, id uuid.UUID) error {
	query := `
		UPDATE expenses
		SET deleted = TRUE, updated_at = NOW()
		WHERE account_id = $1 AND id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, accountID, id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}
