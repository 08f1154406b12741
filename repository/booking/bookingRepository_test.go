package bookingrepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"shareit/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, Repo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock, New(db)
}

func bookingRows(bs ...model.Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "start_date", "end_date", "status", "item_id", "booker_id"})
	for _, b := range bs {
		rows.AddRow(b.ID, b.Start, b.End, string(b.Status), b.ItemID, b.BookerID)
	}
	return rows
}

func TestByID_NoRowIsNil(t *testing.T) {
	_, mock, r := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows())

	b, err := r.ByID(context.Background(), 7)
	require.NoError(t, err)
	require.Nil(t, b)
}

func TestByID_Found(t *testing.T) {
	_, mock, r := newMock(t)

	now := time.Now().UTC()
	want := model.Booking{ID: 7, Start: now, End: now.Add(time.Hour), Status: model.BookingWaiting, ItemID: 2, BookerID: 3}
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(bookingRows(want))

	b, err := r.ByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, want, *b)
}

func TestInsert_ReturnsGeneratedID(t *testing.T) {
	db, mock, r := newMock(t)

	now := time.Now().UTC()
	b := &model.Booking{Start: now, End: now.Add(time.Hour), Status: model.BookingWaiting, ItemID: 2, BookerID: 3}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(b.Start, b.End, string(b.Status), b.ItemID, b.BookerID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, r.Insert(context.Background(), tx, b))
	require.Equal(t, int64(9), b.ID)
}

func TestCountOverlapping_RunsInGivenTx(t *testing.T) {
	db, mock, r := newMock(t)

	start := time.Now().UTC()
	end := start.Add(time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs(int64(2), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	n, err := r.CountOverlapping(context.Background(), tx, 2, start, end)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestListByBooker_StateFilters(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		state model.BookingState
		args  []driver.Value
	}{
		{model.StateAll, []driver.Value{int64(3), 0, 10}},
		{model.StatePast, []driver.Value{int64(3), now, 0, 10}},
		{model.StateWaiting, []driver.Value{int64(3), "WAITING", 0, 10}},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			_, mock, r := newMock(t)

			mock.ExpectQuery("SELECT (.+) FROM bookings b").
				WithArgs(tc.args...).
				WillReturnRows(bookingRows(model.Booking{ID: 1, Start: now, End: now, Status: model.BookingWaiting, ItemID: 2, BookerID: 3}))

			got, err := r.ListByBooker(context.Background(), 3, tc.state, now, 0, 10)
			require.NoError(t, err)
			require.Len(t, got, 1)
		})
	}
}

func TestListByItemOwner_JoinsItems(t *testing.T) {
	now := time.Now().UTC()
	_, mock, r := newMock(t)

	mock.ExpectQuery("JOIN items i ON i.id = b.item_id").
		WithArgs(int64(5), 0, 10).
		WillReturnRows(bookingRows())

	got, err := r.ListByItemOwner(context.Background(), 5, model.StateAll, now, 0, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestApprovedForItems_EmptySetSkipsQuery(t *testing.T) {
	_, _, r := newMock(t)

	got, err := r.LastApprovedForItems(context.Background(), nil, time.Now())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLastApprovedForItems_ExpandsPlaceholders(t *testing.T) {
	_, mock, r := newMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`item_id IN \(\$1,\$2\)`).
		WithArgs(int64(10), int64(11), now).
		WillReturnRows(bookingRows(model.Booking{ID: 1, Start: now, End: now, Status: model.BookingApproved, ItemID: 10, BookerID: 3}))

	got, err := r.LastApprovedForItems(context.Background(), []int64{10, 11}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestHasFinishedApproved(t *testing.T) {
	_, mock, r := newMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(10), int64(3), now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := r.HasFinishedApproved(context.Background(), 10, 3, now)
	require.NoError(t, err)
	require.True(t, ok)
}
