package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	"shareit/service/apperr"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	CountOverlapping(ctx context.Context, tx *sql.Tx, itemID int64, start, end time.Time) (int, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, offset, limit int) ([]model.Booking, error)
	ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, offset, limit int) ([]model.Booking, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	// Create books an item for [start, end]. The new booking is WAITING.
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.BookingView, error)

	// ChangeStatus approves or rejects a WAITING booking. Owner only; a
	// booking already carrying the target status is not re-applied.
	ChangeStatus(ctx context.Context, bookingID int64, approve bool, requesterID int64) (*model.BookingView, error)

	// Get returns a booking to its booker or the item's owner.
	Get(ctx context.Context, bookingID, requesterID int64) (*model.BookingView, error)

	ListByState(ctx context.Context, userID int64, state string, from, size int) ([]model.BookingView, error)
	ListByOwnerState(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error)
}

type service struct {
	db    *sql.DB
	r     Repo
	items Items
	users Users
	now   func() time.Time
}

func New(db *sql.DB, r Repo, items Items, users Users) Service {
	return &service{db: db, r: r, items: items, users: users, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (_ *model.BookingView, err error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperr.BadEntity("booking start and end are required")
	}
	if end.Equal(start) {
		return nil, apperr.BadEntity("booking start and end are equal")
	}
	if end.Before(start) {
		return nil, apperr.BadEntity("booking end is before start")
	}

	booker, err := s.users.ByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, apperr.NotFound("user not found")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	item, err := s.items.ByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item not found")
	}
	if item.OwnerID == bookerID {
		return nil, apperr.NotOwned("owner cannot book their own item")
	}
	if !item.Available {
		return nil, apperr.BadEntity("item is not available for booking")
	}

	overlapping, err := s.r.CountOverlapping(ctx, tx, itemID, start, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, apperr.BadEntity("item is already booked for this period")
	}

	b := &model.Booking{
		Start:    start,
		End:      end,
		Status:   model.BookingWaiting,
		ItemID:   itemID,
		BookerID: bookerID,
	}
	if err = s.r.Insert(ctx, tx, b); err != nil {
		return nil, mapOverlapErr(err)
	}
	if err = tx.Commit(); err != nil {
		return nil, mapOverlapErr(err)
	}

	return &model.BookingView{
		ID: b.ID, Start: b.Start, End: b.End, Status: b.Status,
		Item: *item, Booker: *booker,
	}, nil
}

func (s *service) ChangeStatus(ctx context.Context, bookingID int64, approve bool, requesterID int64) (*model.BookingView, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item not found")
	}
	if item.OwnerID != requesterID {
		return nil, apperr.NotOwned("only the item owner can change a booking status")
	}

	target := model.BookingRejected
	if approve {
		target = model.BookingApproved
	}
	if b.Status == target {
		return nil, apperr.BadEntity("booking status already set")
	}
	if err := s.r.UpdateStatus(ctx, bookingID, target); err != nil {
		return nil, err
	}
	b.Status = target
	return s.hydrate(ctx, b, item)
}

func (s *service) Get(ctx context.Context, bookingID, requesterID int64) (*model.BookingView, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item not found")
	}
	if b.BookerID != requesterID && item.OwnerID != requesterID {
		return nil, apperr.NotOwned("booking is visible to its booker or the item owner only")
	}
	return s.hydrate(ctx, b, item)
}

func (s *service) ListByState(ctx context.Context, userID int64, state string, from, size int) ([]model.BookingView, error) {
	st, err := s.checkListArgs(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	bookings, err := s.r.ListByBooker(ctx, userID, st, s.now(), from, size)
	if err != nil {
		return nil, err
	}
	return s.hydrateAll(ctx, bookings)
}

func (s *service) ListByOwnerState(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error) {
	st, err := s.checkListArgs(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}
	bookings, err := s.r.ListByItemOwner(ctx, ownerID, st, s.now(), from, size)
	if err != nil {
		return nil, err
	}
	return s.hydrateAll(ctx, bookings)
}

func (s *service) checkListArgs(ctx context.Context, userID int64, state string) (model.BookingState, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("user not found")
	}
	st, valid := model.ParseBookingState(state)
	if !valid {
		return "", apperr.BadEntity(fmt.Sprintf("Unknown state: %s", state))
	}
	return st, nil
}

func (s *service) hydrate(ctx context.Context, b *model.Booking, item *model.Item) (*model.BookingView, error) {
	booker, err := s.users.ByID(ctx, b.BookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, apperr.NotFound("user not found")
	}
	return &model.BookingView{
		ID: b.ID, Start: b.Start, End: b.End, Status: b.Status,
		Item: *item, Booker: *booker,
	}, nil
}

// hydrateAll attaches items and bookers to a listing page, memoizing lookups
// so a page over one item or one booker costs one query each.
func (s *service) hydrateAll(ctx context.Context, bookings []model.Booking) ([]model.BookingView, error) {
	items := make(map[int64]*model.Item)
	users := make(map[int64]*model.User)
	out := make([]model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		item, ok := items[b.ItemID]
		if !ok {
			var err error
			item, err = s.items.ByID(ctx, b.ItemID)
			if err != nil {
				return nil, err
			}
			items[b.ItemID] = item
		}
		booker, ok := users[b.BookerID]
		if !ok {
			var err error
			booker, err = s.users.ByID(ctx, b.BookerID)
			if err != nil {
				return nil, err
			}
			users[b.BookerID] = booker
		}
		if item == nil || booker == nil {
			continue
		}
		out = append(out, model.BookingView{
			ID: b.ID, Start: b.Start, End: b.End, Status: b.Status,
			Item: *item, Booker: *booker,
		})
	}
	return out, nil
}

// mapOverlapErr translates the schema's range-exclusion violation, which is
// the authoritative guard when two creations race past the in-transaction
// check.
func mapOverlapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		return apperr.BadEntity("item is already booked for this period")
	}
	return err
}
