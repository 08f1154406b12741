// Package controller holds the HTTP handlers of the business tier and the
// helpers they share: acting-user header parsing, path ids, paging params
// and error-to-status translation.
package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/service/apperr"
)

// HeaderUserID carries the acting user's id. The value is trusted as-is;
// the gateway has already checked its shape.
const HeaderUserID = "X-Sharer-User-Id"

func UserID(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(HeaderUserID)
	if raw == "" {
		return 0, apperr.BadEntity("X-Sharer-User-Id header is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadEntity("X-Sharer-User-Id header must be a positive integer")
	}
	return id, nil
}

func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadEntity("invalid " + name)
	}
	return id, nil
}

// Paging reads the from/size query params with the catalog defaults.
func Paging(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, apperr.BadEntity("from must be a non-negative integer")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return 0, 0, apperr.BadEntity("size must be a positive integer")
		}
	}
	return from, size, nil
}

// ErrStatus maps a coded business error to its HTTP status. Ownership
// violations answer 404 on purpose, indistinguishable from a missing
// resource.
func ErrStatus(err error) int {
	switch apperr.Code(err) {
	case apperr.ErrNotFound, apperr.ErrNotOwned:
		return http.StatusNotFound
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrBadEntity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func JSONError(c echo.Context, err error) error {
	return c.JSON(ErrStatus(err), echo.Map{"error": err.Error()})
}
