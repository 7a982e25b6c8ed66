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

const settlementColumns = `id, trip_id, from_id, to_id, amount_cents, note, created_by, created_at`

// AppendSettlement persists a new settlement.
func (s *SQLiteStore) AppendSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	var note any
	if settlement.Note != "" {
		note = settlement.Note
	}
	amount, err := toCents(settlement.Amount)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tripExists(ctx, tx, settlement.TripID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (`+settlementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, settlement.TripID, settlement.FromID, settlement.ToID,
			amount, note, settlement.CreatedBy, settlement.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
		return nil
	})
}

// RemoveSettlement deletes a settlement by ID and returns it.
func (s *SQLiteStore) RemoveSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	var removed *models.Settlement
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = ?`, settlementID)
		settlement, err := scanSettlement(row.Scan)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.KindSettlementNotFound, "settlement not found: %s", settlementID)
		}
		if err != nil {
			return fmt.Errorf("failed to get settlement: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID); err != nil {
			return fmt.Errorf("failed to delete settlement: %w", err)
		}
		removed = &settlement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// GetSettlement retrieves one settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = ?`, settlementID)
	settlement, err := scanSettlement(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindSettlementNotFound, "settlement not found: %s", settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return &settlement, nil
}

// ListSettlements retrieves all settlements for a trip, oldest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, tripID string) ([]models.Settlement, error) {
	if err := tripExists(ctx, s.db, tripID); err != nil {
		return nil, err
	}
	return listSettlements(ctx, s.db, tripID)
}

func listSettlements(ctx context.Context, q querier, tripID string) ([]models.Settlement, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by trip: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

func scanSettlement(scan func(dest ...any) error) (models.Settlement, error) {
	var (
		settlement models.Settlement
		cents      int64
		note       sql.NullString
	)
	err := scan(&settlement.ID, &settlement.TripID, &settlement.FromID, &settlement.ToID,
		&cents, &note, &settlement.CreatedBy, &settlement.CreatedAt)
	if err != nil {
		return settlement, err
	}
	settlement.Amount = fromCents(cents)
	if note.Valid {
		settlement.Note = note.String
	}
	return settlement, nil
}
