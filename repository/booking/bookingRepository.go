package bookingrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/model"
)

// Repo is the booking store. Creation-path methods take the transaction the
// service opened so the availability check, the overlap check and the insert
// commit atomically.
type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	CountOverlapping(ctx context.Context, tx *sql.Tx, itemID int64, start, end time.Time) (int, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, offset, limit int) ([]model.Booking, error)
	ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, offset, limit int) ([]model.Booking, error)
	LastApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	NextApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const bookingColumns = `id, start_date, end_date, status, item_id, booker_id`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.Start, &b.End, &b.Status, &b.ItemID, &b.BookerID)
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_date, end_date, status, item_id, booker_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return tx.QueryRowContext(ctx, q, b.Start, b.End, b.Status, b.ItemID, b.BookerID).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b := &model.Booking{}
	err := scanBooking(r.db.QueryRowContext(ctx, q, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status)
	return err
}

// CountOverlapping counts WAITING/APPROVED bookings sharing any instant of
// [start, end] with the given window.
func (r *repo) CountOverlapping(ctx context.Context, tx *sql.Tx, itemID int64, start, end time.Time) (int, error) {
	const q = `
		SELECT count(*)
		FROM bookings
		WHERE item_id = $1
		  AND status IN ('WAITING', 'APPROVED')
		  AND start_date <= $3
		  AND end_date >= $2`
	var n int
	err := tx.QueryRowContext(ctx, q, itemID, start, end).Scan(&n)
	return n, err
}

// stateClause returns the extra WHERE condition for a booking state filter.
// Column references are prefixed with b. so the clause works in joins too.
func stateClause(state model.BookingState, arg int) (string, bool) {
	switch state {
	case model.StateCurrent:
		return fmt.Sprintf(" AND b.start_date <= $%d AND b.end_date >= $%d", arg, arg), true
	case model.StatePast:
		return fmt.Sprintf(" AND b.end_date < $%d", arg), true
	case model.StateFuture:
		return fmt.Sprintf(" AND b.start_date > $%d", arg), true
	case model.StateWaiting, model.StateRejected, model.StateApproved:
		return fmt.Sprintf(" AND b.status = $%d", arg), false
	}
	return "", false
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, offset, limit int) ([]model.Booking, error) {
	q := `
		SELECT b.id, b.start_date, b.end_date, b.status, b.item_id, b.booker_id
		FROM bookings b
		WHERE b.booker_id = $1`
	args := []any{bookerID}
	if state != model.StateAll {
		clause, timeArg := stateClause(state, 2)
		q += clause
		if timeArg {
			args = append(args, now)
		} else {
			args = append(args, string(state))
		}
	}
	q += fmt.Sprintf(" ORDER BY b.start_date DESC OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, offset, limit)
	return r.queryBookings(ctx, q, args...)
}

func (r *repo) ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, offset, limit int) ([]model.Booking, error) {
	q := `
		SELECT b.id, b.start_date, b.end_date, b.status, b.item_id, b.booker_id
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1`
	args := []any{ownerID}
	if state != model.StateAll {
		clause, timeArg := stateClause(state, 2)
		q += clause
		if timeArg {
			args = append(args, now)
		} else {
			args = append(args, string(state))
		}
	}
	q += fmt.Sprintf(" ORDER BY b.start_date DESC OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, offset, limit)
	return r.queryBookings(ctx, q, args...)
}

// LastApprovedForItems fetches, in one query, every APPROVED booking that
// started before now for the given item set. The caller groups per item.
func (r *repo) LastApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	return r.approvedForItems(ctx, itemIDs, "start_date < ", now)
}

// NextApprovedForItems is the forward-looking counterpart of
// LastApprovedForItems.
func (r *repo) NextApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	return r.approvedForItems(ctx, itemIDs, "start_date > ", now)
}

func (r *repo) approvedForItems(ctx context.Context, itemIDs []int64, cmp string, now time.Time) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(itemIDs))
	args := make([]any, 0, len(itemIDs)+1)
	for i, id := range itemIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}
	args = append(args, now)
	q := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE item_id IN (` + strings.Join(placeholders, ",") + `)
		  AND status = 'APPROVED'
		  AND ` + cmp + fmt.Sprintf("$%d", len(itemIDs)+1) + `
		ORDER BY item_id`
	return r.queryBookings(ctx, q, args...)
}

func (r *repo) HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE item_id = $1
			  AND booker_id = $2
			  AND status = 'APPROVED'
			  AND end_date < $3
		)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, itemID, bookerID, now).Scan(&ok)
	return ok, err
}

func (r *repo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
