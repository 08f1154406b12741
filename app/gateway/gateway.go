// Package gateway is the edge tier: it checks the shape of inbound requests
// (acting-user header, payload fields, paging params, booking time window)
// and forwards the valid ones to the business tier untouched.
package gateway

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const headerUserID = "X-Sharer-User-Id"

type Controller struct {
	ServerURL string
	Client    *http.Client
	V         *validator.Validate
	Log       *slog.Logger
}

// forward replays the inbound request against the server and relays the
// server's status and body verbatim.
func (g *Controller) forward(c echo.Context, body []byte) error {
	req := c.Request()
	url := g.ServerURL + req.URL.Path
	if req.URL.RawQuery != "" {
		url += "?" + req.URL.RawQuery
	}

	out, err := http.NewRequestWithContext(req.Context(), req.Method, url, bytes.NewReader(body))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	out.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid := req.Header.Get(headerUserID); uid != "" {
		out.Header.Set(headerUserID, uid)
	}

	resp, err := g.Client.Do(out)
	if err != nil {
		g.Log.Error("gateway forward", "err", err, "path", req.URL.Path)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "server unavailable"})
	}
	defer resp.Body.Close()

	return c.Stream(resp.StatusCode, resp.Header.Get(echo.HeaderContentType), resp.Body)
}

// passThrough forwards without touching the payload.
func (g *Controller) passThrough(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}
	return g.forward(c, body)
}

// requireUser rejects requests whose acting-user header is missing or not a
// positive integer. The header's value is otherwise trusted as-is.
func requireUser(c echo.Context) error {
	raw := c.Request().Header.Get(headerUserID)
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "X-Sharer-User-Id header is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "X-Sharer-User-Id header must be a positive integer")
	}
	return nil
}

func checkPaging(c echo.Context) error {
	if raw := c.QueryParam("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be a non-negative integer")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "size must be a positive integer")
		}
	}
	return nil
}
