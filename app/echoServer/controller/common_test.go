package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/service/apperr"
)

func ctxWithQuery(target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestUserID(t *testing.T) {
	c := ctxWithQuery("/items")
	_, err := UserID(c)
	require.Equal(t, apperr.ErrBadEntity, apperr.Code(err))

	c.Request().Header.Set(HeaderUserID, "12")
	id, err := UserID(c)
	require.NoError(t, err)
	require.Equal(t, int64(12), id)

	c.Request().Header.Set(HeaderUserID, "-1")
	_, err = UserID(c)
	require.Equal(t, apperr.ErrBadEntity, apperr.Code(err))
}

func TestPaging_Defaults(t *testing.T) {
	from, size, err := Paging(ctxWithQuery("/items"))
	require.NoError(t, err)
	require.Equal(t, 0, from)
	require.Equal(t, 10, size)
}

func TestPaging_Overrides(t *testing.T) {
	from, size, err := Paging(ctxWithQuery("/items?from=20&size=5"))
	require.NoError(t, err)
	require.Equal(t, 20, from)
	require.Equal(t, 5, size)
}

func TestPaging_Rejections(t *testing.T) {
	for _, target := range []string{"/items?from=-1", "/items?size=0", "/items?from=x"} {
		t.Run(target, func(t *testing.T) {
			_, _, err := Paging(ctxWithQuery(target))
			require.Equal(t, apperr.ErrBadEntity, apperr.Code(err))
		})
	}
}

func TestErrStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("x"), http.StatusNotFound},
		{apperr.NotOwned("x"), http.StatusNotFound},
		{apperr.Conflict("x"), http.StatusConflict},
		{apperr.BadEntity("x"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ErrStatus(tc.err))
	}
}

func TestJSONError_Payload(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, JSONError(c, apperr.Conflict("email already in use")))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"email already in use"}`, rec.Body.String())
}
