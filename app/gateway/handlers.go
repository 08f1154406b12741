package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// readJSON buffers the body and decodes it into dst, keeping the raw bytes
// for forwarding.
func readJSON(c echo.Context, dst any) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid JSON")
	}
	return body, nil
}

func (g *Controller) CreateUser(c echo.Context) error {
	var req createUserReq
	body, err := readJSON(c, &req)
	if err != nil {
		return err
	}
	if err := g.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return g.forward(c, body)
}

func (g *Controller) PatchUser(c echo.Context) error {
	return g.passThrough(c)
}

func (g *Controller) CreateItem(c echo.Context) error {
	if err := requireUser(c); err != nil {
		return err
	}
	var req createItemReq
	body, err := readJSON(c, &req)
	if err != nil {
		return err
	}
	if err := g.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return g.forward(c, body)
}

func (g *Controller) AddComment(c echo.Context) error {
	if err := requireUser(c); err != nil {
		return err
	}
	var req commentReq
	body, err := readJSON(c, &req)
	if err != nil {
		return err
	}
	if err := g.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return g.forward(c, body)
}

func (g *Controller) CreateBooking(c echo.Context) error {
	if err := requireUser(c); err != nil {
		return err
	}
	var req bookItemReq
	body, err := readJSON(c, &req)
	if err != nil {
		return err
	}
	if err := g.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Start == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "booking start is required")
	}
	if req.End == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "booking end is required")
	}
	if req.End.Equal(*req.Start) {
		return echo.NewHTTPError(http.StatusBadRequest, "booking start and end are equal")
	}
	if req.End.Before(*req.Start) {
		return echo.NewHTTPError(http.StatusBadRequest, "booking end is before start")
	}
	return g.forward(c, body)
}

func (g *Controller) ChangeBookingStatus(c echo.Context) error {
	if err := requireUser(c); err != nil {
		return err
	}
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved must be true or false")
	}
	return g.passThrough(c)
}

func (g *Controller) CreateRequest(c echo.Context) error {
	if err := requireUser(c); err != nil {
		return err
	}
	var req createRequestReq
	body, err := readJSON(c, &req)
	if err != nil {
		return err
	}
	if err := g.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return g.forward(c, body)
}

// WithUser guards read endpoints that need the acting-user header.
func (g *Controller) WithUser(c echo.Context) error {
	if err := requireUser(c); err != nil {
		return err
	}
	if err := checkPaging(c); err != nil {
		return err
	}
	return g.passThrough(c)
}

// Plain forwards endpoints with no header requirement.
func (g *Controller) Plain(c echo.Context) error {
	if err := checkPaging(c); err != nil {
		return err
	}
	return g.passThrough(c)
}
