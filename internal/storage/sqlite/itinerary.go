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

const itineraryColumns = `id, trip_id, title, description, location, starts_at, ends_at, created_by, created_at, updated_at`

// AppendItineraryItem persists a new itinerary item.
func (s *SQLiteStore) AppendItineraryItem(ctx context.Context, item *models.ItineraryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	if item.UpdatedAt == 0 {
		item.UpdatedAt = item.CreatedAt
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tripExists(ctx, tx, item.TripID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO itinerary_items (`+itineraryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.TripID, item.Title, item.Description, item.Location,
			item.StartsAt, item.EndsAt, item.CreatedBy, item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert itinerary item: %w", err)
		}
		return nil
	})
}

// ReplaceItineraryItem overwrites the editable fields of an item.
func (s *SQLiteStore) ReplaceItineraryItem(ctx context.Context, item *models.ItineraryItem) error {
	if item.UpdatedAt == 0 {
		item.UpdatedAt = time.Now().Unix()
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE itinerary_items
		 SET title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, updated_at = ?
		 WHERE id = ?`,
		item.Title, item.Description, item.Location, item.StartsAt, item.EndsAt, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update itinerary item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindItineraryNotFound, "itinerary item not found: %s", item.ID)
	}
	return nil
}

// RemoveItineraryItem deletes an item and returns it.
func (s *SQLiteStore) RemoveItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error) {
	var removed *models.ItineraryItem
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		item, err := getItineraryItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM itinerary_items WHERE id = ?", itemID); err != nil {
			return fmt.Errorf("failed to delete itinerary item: %w", err)
		}
		removed = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// GetItineraryItem retrieves one item by ID.
func (s *SQLiteStore) GetItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error) {
	return getItineraryItem(ctx, s.db, itemID)
}

// ListItinerary returns a trip's items by start time. Unscheduled items come last, in
// the order they were added.
func (s *SQLiteStore) ListItinerary(ctx context.Context, tripID string) ([]models.ItineraryItem, error) {
	if err := tripExists(ctx, s.db, tripID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itineraryColumns+` FROM itinerary_items
		 WHERE trip_id = ?
		 ORDER BY starts_at = 0, starts_at, created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary: %w", err)
	}
	defer rows.Close()

	var items []models.ItineraryItem
	for rows.Next() {
		item, err := scanItineraryItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itinerary: %w", err)
	}
	return items, nil
}

func getItineraryItem(ctx context.Context, q querier, itemID string) (*models.ItineraryItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+itineraryColumns+` FROM itinerary_items WHERE id = ?`, itemID)
	item, err := scanItineraryItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindItineraryNotFound, "itinerary item not found: %s", itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary item: %w", err)
	}
	return item, nil
}

func scanItineraryItem(scan func(dest ...any) error) (*models.ItineraryItem, error) {
	item := &models.ItineraryItem{}
	err := scan(&item.ID, &item.TripID, &item.Title, &item.Description, &item.Location,
		&item.StartsAt, &item.EndsAt, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}
