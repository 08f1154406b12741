package usersvc

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/service/apperr"
)

type repoMock struct {
	createFn func(ctx context.Context, u *model.User) error
	updateFn func(ctx context.Context, u *model.User) error
	byIDFn   func(ctx context.Context, id int64) (*model.User, error)
	listFn   func(ctx context.Context) ([]model.User, error)
	deleteFn func(ctx context.Context, id int64) error
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *repoMock) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.User, error) { return m.listFn(ctx) }
func (m *repoMock) Delete(ctx context.Context, id int64) error     { return m.deleteFn(ctx, id) }
func (m *repoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	r := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 1
			return nil
		},
	}
	svc := New(r)

	u, err := svc.Create(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, "alice", u.Name)
}

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	r := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	svc := New(r)

	_, err := svc.Create(context.Background(), "bob", "alice@example.com")
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
}

func TestCreate_OtherConstraintPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_pkey"}
	r := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error { return pgErr },
	}
	svc := New(r)

	_, err := svc.Create(context.Background(), "bob", "bob@example.com")
	require.ErrorIs(t, err, pgErr)
	require.Empty(t, apperr.Code(err))
}

func TestPatch_UnknownUser(t *testing.T) {
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, nil },
	}
	svc := New(r)

	_, err := svc.Patch(context.Background(), 99, model.UserPatch{Name: strPtr("x")})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestPatch_AppliesOnlyPresentFields(t *testing.T) {
	var saved *model.User
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "alice", Email: "alice@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			saved = u
			return nil
		},
	}
	svc := New(r)

	u, err := svc.Patch(context.Background(), 1, model.UserPatch{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	require.Equal(t, "alice", u.Name)
	require.Equal(t, "new@example.com", u.Email)
	require.Same(t, u, saved)
}

func TestPatch_DuplicateEmailIsConflict(t *testing.T) {
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "alice", Email: "alice@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	svc := New(r)

	_, err := svc.Patch(context.Background(), 1, model.UserPatch{Email: strPtr("taken@example.com")})
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
}

func TestGet_UnknownUser(t *testing.T) {
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, nil },
	}
	svc := New(r)

	_, err := svc.Get(context.Background(), 99)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestDelete_UnknownUser(t *testing.T) {
	r := &repoMock{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := New(r)

	err := svc.Delete(context.Background(), 99)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestDelete_Success(t *testing.T) {
	var deleted int64
	r := &repoMock{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	svc := New(r)

	require.NoError(t, svc.Delete(context.Background(), 5))
	require.Equal(t, int64(5), deleted)
}
