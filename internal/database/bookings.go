package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/doug-martin/goqu/v9"

	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

var dialect = goqu.Dialect("sqlite3")

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start.UTC(),
		booking.End.UTC(),
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	sqlStr, args, err := bookingSelect().Where(goqu.I("b.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	booking, err := db.scanBooking(db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus is last-write-wins: there is no guard against a
// second decision on an already approved or rejected booking.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// ListBookings returns bookings for a booker or an item owner, filtered by
// state. Status-filtered variants (ALL, WAITING, REJECTED) are ordered by
// start descending, time-filtered ones (CURRENT, PAST, FUTURE) by id
// ascending. The two orderings are part of the API contract and are not
// interchangeable.
func (db *DB) ListBookings(ctx context.Context, role models.BookingRole, userID int64, state models.BookingState) ([]models.Booking, error) {
	ds := bookingSelect()

	switch role {
	case models.RoleBooker:
		ds = ds.Where(goqu.I("b.booker_id").Eq(userID))
	case models.RoleOwner:
		ds = ds.Where(goqu.I("i.owner_id").Eq(userID))
	default:
		return nil, fmt.Errorf("unknown booking role: %d", role)
	}

	now := time.Now().UTC()
	switch state {
	case models.StateAll:
		ds = ds.Order(goqu.I("b.start_date").Desc())
	case models.StateWaiting:
		ds = ds.Where(goqu.I("b.status").Eq(models.StatusWaiting)).Order(goqu.I("b.start_date").Desc())
	case models.StateRejected:
		ds = ds.Where(goqu.I("b.status").Eq(models.StatusRejected)).Order(goqu.I("b.start_date").Desc())
	case models.StateCurrent:
		ds = ds.Where(goqu.I("b.start_date").Lte(now), goqu.I("b.end_date").Gte(now)).Order(goqu.I("b.id").Asc())
	case models.StatePast:
		ds = ds.Where(goqu.I("b.end_date").Lt(now)).Order(goqu.I("b.id").Asc())
	case models.StateFuture:
		ds = ds.Where(goqu.I("b.start_date").Gt(now)).Order(goqu.I("b.id").Asc())
	default:
		return nil, apperr.Validation("unknown state: %s, expected one of ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED", state)
	}

	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build bookings query: %w", err)
	}

	return db.queryBookings(ctx, sqlStr, args...)
}

// GetBookingsByDateRange returns bookings whose interval overlaps
// [from, to], ordered by start. Used by the export worker.
func (db *DB) GetBookingsByDateRange(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	sqlStr, args, err := bookingSelect().
		Where(goqu.I("b.start_date").Lte(to.UTC()), goqu.I("b.end_date").Gte(from.UTC())).
		Order(goqu.I("b.start_date").Asc(), goqu.I("b.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build date range query: %w", err)
	}

	return db.queryBookings(ctx, sqlStr, args...)
}

func bookingSelect() *goqu.SelectDataset {
	return dialect.From(goqu.T("bookings").As("b")).
		InnerJoin(goqu.T("items").As("i"), goqu.On(goqu.I("b.item_id").Eq(goqu.I("i.id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("b.item_id"),
			goqu.I("i.name"),
			goqu.I("i.owner_id"),
			goqu.I("b.booker_id"),
			goqu.I("b.start_date"),
			goqu.I("b.end_date"),
			goqu.I("b.status"),
			goqu.I("b.created_at"),
			goqu.I("b.updated_at"),
		)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := db.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}
