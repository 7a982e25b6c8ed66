package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/models"
)

const tripColumns = `id, name, description, destination, start_date, end_date, currency, invite_code, owner_id, created_at`

// CreateTrip persists a new trip and adds its owner as the first member.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.InviteCode == "" {
		trip.InviteCode = newInviteCode()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	if trip.Currency == "" {
		trip.Currency = models.DefaultCurrency
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO trips (`+tripColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			trip.ID, trip.Name, trip.Description, trip.Destination, trip.StartDate, trip.EndDate,
			trip.Currency, trip.InviteCode, trip.OwnerID, trip.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO trip_members (trip_id, user_id, joined_at) VALUES (?, ?, ?)`,
			trip.ID, trip.OwnerID, trip.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	members, err := s.MembersOf(ctx, trip.ID)
	if err != nil {
		return err
	}
	trip.Members = members
	return nil
}

// GetTrip retrieves a trip by ID, including its members.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return getTrip(ctx, s.db, `WHERE id = ?`, tripID)
}

// GetTripByInviteCode retrieves a trip by its invite code. Codes are case-insensitive.
func (s *SQLiteStore) GetTripByInviteCode(ctx context.Context, code string) (*models.Trip, error) {
	return getTrip(ctx, s.db, `WHERE invite_code = ?`, strings.ToUpper(strings.TrimSpace(code)))
}

func getTrip(ctx context.Context, q querier, where string, arg string) (*models.Trip, error) {
	trip, err := scanTrip(q.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips `+where, arg).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindTripNotFound, "trip not found: %s", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	members, err := listMembers(ctx, q, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Members = members
	return trip, nil
}

// ListTripsForUser returns every trip userID belongs to, newest first, with members.
func (s *SQLiteStore) ListTripsForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	var trips []models.Trip
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT t.id, t.name, t.description, t.destination, t.start_date, t.end_date,
			        t.currency, t.invite_code, t.owner_id, t.created_at
			 FROM trips t JOIN trip_members m ON m.trip_id = t.id
			 WHERE m.user_id = ?
			 ORDER BY t.created_at DESC, t.rowid DESC`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to list trips: %w", err)
		}

		for rows.Next() {
			trip, err := scanTrip(rows.Scan)
			if err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan trip: %w", err)
			}
			trips = append(trips, *trip)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return fmt.Errorf("failed to iterate trips: %w", err)
		}

		// One connection: the trip rows are closed before members are read.
		for i := range trips {
			if trips[i].Members, err = listMembers(ctx, tx, trips[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func scanTrip(scan func(dest ...any) error) (*models.Trip, error) {
	trip := &models.Trip{}
	err := scan(&trip.ID, &trip.Name, &trip.Description, &trip.Destination, &trip.StartDate, &trip.EndDate,
		&trip.Currency, &trip.InviteCode, &trip.OwnerID, &trip.CreatedAt)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// AddTripMember adds a user to a trip. Re-adding an existing member is a no-op.
func (s *SQLiteStore) AddTripMember(ctx context.Context, tripID, userID string) error {
	if err := tripExists(ctx, s.db, tripID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO trip_members (trip_id, user_id, joined_at) VALUES (?, ?, ?)`,
		tripID, userID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add trip member: %w", err)
	}
	return nil
}

// MembersOf lists a trip's members with their display names, in join order.
func (s *SQLiteStore) MembersOf(ctx context.Context, tripID string) ([]models.Member, error) {
	if err := tripExists(ctx, s.db, tripID); err != nil {
		return nil, err
	}
	return listMembers(ctx, s.db, tripID)
}

func tripExists(ctx context.Context, q querier, tripID string) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(apperr.KindTripNotFound, "trip not found: %s", tripID)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	return nil
}

func listMembers(ctx context.Context, q querier, tripID string) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT u.id, u.display_name
		 FROM trip_members m JOIN users u ON u.id = m.user_id
		 WHERE m.trip_id = ?
		 ORDER BY m.joined_at, m.rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip members: %w", err)
	}
	return members, nil
}

// newInviteCode returns an 8-character upper-case code.
func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
