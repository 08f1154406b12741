package controller

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/service/apperr"
)

type userSvcMock struct {
	createFn func(ctx context.Context, name, email string) (*model.User, error)
	patchFn  func(ctx context.Context, id int64, p model.UserPatch) (*model.User, error)
	getFn    func(ctx context.Context, id int64) (*model.User, error)
	listFn   func(ctx context.Context) ([]model.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *userSvcMock) Create(ctx context.Context, name, email string) (*model.User, error) {
	return m.createFn(ctx, name, email)
}
func (m *userSvcMock) Patch(ctx context.Context, id int64, p model.UserPatch) (*model.User, error) {
	return m.patchFn(ctx, id, p)
}
func (m *userSvcMock) Get(ctx context.Context, id int64) (*model.User, error) {
	return m.getFn(ctx, id)
}
func (m *userSvcMock) List(ctx context.Context) ([]model.User, error) { return m.listFn(ctx) }
func (m *userSvcMock) Delete(ctx context.Context, id int64) error     { return m.deleteFn(ctx, id) }

func newUserController(svc *userSvcMock) *UserController {
	return &UserController{
		Svc: svc,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func serve(h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
	return rec
}

func TestUserCreate_OK(t *testing.T) {
	h := newUserController(&userSvcMock{
		createFn: func(ctx context.Context, name, email string) (*model.User, error) {
			return &model.User{ID: 1, Name: name, Email: email}, nil
		},
	})

	rec := serve(h.Create, http.MethodPost, "/users", `{"name":"alice","email":"alice@example.com"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":1,"name":"alice","email":"alice@example.com"}`, rec.Body.String())
}

func TestUserCreate_ValidationRejectsBadEmail(t *testing.T) {
	h := newUserController(&userSvcMock{})

	rec := serve(h.Create, http.MethodPost, "/users", `{"name":"alice","email":"nope"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserCreate_DuplicateEmailIs409(t *testing.T) {
	h := newUserController(&userSvcMock{
		createFn: func(ctx context.Context, name, email string) (*model.User, error) {
			return nil, apperr.Conflict("email already in use")
		},
	})

	rec := serve(h.Create, http.MethodPost, "/users", `{"name":"alice","email":"alice@example.com"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"email already in use"}`, rec.Body.String())
}

func TestUserGet_UnknownIs404(t *testing.T) {
	h := newUserController(&userSvcMock{
		getFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, apperr.NotFound("user not found")
		},
	})

	rec := serve(h.Get, http.MethodGet, "/users/9", "", map[string]string{"userId": "9"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserPatch_PartialBody(t *testing.T) {
	var got model.UserPatch
	h := newUserController(&userSvcMock{
		patchFn: func(ctx context.Context, id int64, p model.UserPatch) (*model.User, error) {
			got = p
			return &model.User{ID: id, Name: "alice", Email: "new@example.com"}, nil
		},
	})

	rec := serve(h.Patch, http.MethodPatch, "/users/1", `{"email":"new@example.com"}`, map[string]string{"userId": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, got.Name)
	require.NotNil(t, got.Email)
	require.Equal(t, "new@example.com", *got.Email)
}

func TestUserList_EmptyIsArray(t *testing.T) {
	h := newUserController(&userSvcMock{
		listFn: func(ctx context.Context) ([]model.User, error) { return nil, nil },
	})

	rec := serve(h.List, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestUserDelete_BadPathID(t *testing.T) {
	h := newUserController(&userSvcMock{})

	rec := serve(h.Delete, http.MethodDelete, "/users/zero", "", map[string]string{"userId": "zero"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
