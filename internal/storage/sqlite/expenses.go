package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/models"
)

const expenseColumns = `id, trip_id, title, amount_cents, currency, payer_id, split_type, notes, created_at, updated_at`

// AppendExpense persists a new expense and its splits in one transaction.
func (s *SQLiteStore) AppendExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	amount, err := toCents(expense.Amount)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tripExists(ctx, tx, expense.TripID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.TripID, expense.Title, amount, expense.Currency,
			expense.PayerID, string(expense.SplitType), expense.Notes, expense.CreatedAt, expense.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		return insertSplits(ctx, tx, expense)
	})
}

// ReplaceExpense overwrites an expense and all of its splits.
func (s *SQLiteStore) ReplaceExpense(ctx context.Context, expense *models.Expense) error {
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = time.Now().Unix()
	}
	amount, err := toCents(expense.Amount)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE expenses
			 SET title = ?, amount_cents = ?, currency = ?, payer_id = ?, split_type = ?, notes = ?, updated_at = ?
			 WHERE id = ?`,
			expense.Title, amount, expense.Currency, expense.PayerID,
			string(expense.SplitType), expense.Notes, expense.UpdatedAt, expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return apperr.New(apperr.KindExpenseNotFound, "expense not found: %s", expense.ID)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to delete old splits: %w", err)
		}
		return insertSplits(ctx, tx, expense)
	})
}

// RemoveExpense deletes an expense (splits cascade) and returns it.
func (s *SQLiteStore) RemoveExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	var removed *models.Expense
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		expense, err := getExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		removed = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return getExpense(ctx, s.db, expenseID)
}

// ListExpenses returns the trip's expenses in the order they were recorded.
func (s *SQLiteStore) ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tripExists(ctx, tx, tripID); err != nil {
			return err
		}
		var err error
		expenses, err = listExpenses(ctx, tx, tripID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// Snapshot reads the trip, its expenses and its settlements inside a single transaction.
func (s *SQLiteStore) Snapshot(ctx context.Context, tripID string) (*models.LedgerSnapshot, error) {
	snap := &models.LedgerSnapshot{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.Trip, err = getTrip(ctx, tx, `WHERE id = ?`, tripID); err != nil {
			return err
		}
		if snap.Expenses, err = listExpenses(ctx, tx, tripID); err != nil {
			return err
		}
		snap.Settlements, err = listSettlements(ctx, tx, tripID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID
		share, err := toCents(split.Share)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, member_id, position, share_cents) VALUES (?, ?, ?, ?)`,
			expense.ID, split.MemberID, i, share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

func scanExpense(scan func(dest ...any) error) (models.Expense, error) {
	var (
		e         models.Expense
		cents     int64
		splitType string
	)
	err := scan(&e.ID, &e.TripID, &e.Title, &cents, &e.Currency, &e.PayerID, &splitType, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	e.Amount = fromCents(cents)
	e.SplitType = models.SplitType(splitType)
	return e, nil
}

func getExpense(ctx context.Context, q querier, expenseID string) (*models.Expense, error) {
	row := q.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	expense, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindExpenseNotFound, "expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT member_id, share_cents FROM expense_splits WHERE expense_id = ? ORDER BY position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		split := models.Split{ExpenseID: expenseID}
		var cents int64
		if err := rows.Scan(&split.MemberID, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Share = fromCents(cents)
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return &expense, nil
}

// listExpenses reads the expense rows first and the splits second, so only one result
// set is open at a time on the connection.
func listExpenses(ctx context.Context, q querier, tripID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[expense.ID] = len(expenses)
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.member_id, s.share_cents
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = ?
		 ORDER BY s.expense_id, s.position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var (
			split models.Split
			cents int64
		)
		if err := splitRows.Scan(&split.ExpenseID, &split.MemberID, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Share = fromCents(cents)
		if i, ok := index[split.ExpenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expenses, nil
}
