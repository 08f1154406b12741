package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller"
	bookingsvc "shareit/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	bookerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	view, err := h.Svc.Create(c.Request().Context(), bookerID, req.ItemID, req.Start, req.End)
	if err != nil {
		h.Log.Error("booking create", "err", err, "item_id", req.ItemID, "booker_id", bookerID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// PATCH /bookings/:bookingId?approved=bool
func (h *Controller) ChangeStatus(c echo.Context) error {
	requesterID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	bookingID, err := controller.PathID(c, "bookingId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	view, err := h.Svc.ChangeStatus(c.Request().Context(), bookingID, approved, requesterID)
	if err != nil {
		h.Log.Error("booking status", "err", err, "booking_id", bookingID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /bookings/:bookingId
func (h *Controller) Get(c echo.Context) error {
	requesterID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	bookingID, err := controller.PathID(c, "bookingId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	view, err := h.Svc.Get(c.Request().Context(), bookingID, requesterID)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /bookings?state&from&size
func (h *Controller) ListByState(c echo.Context) error {
	userID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	from, size, err := controller.Paging(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	views, err := h.Svc.ListByState(c.Request().Context(), userID, stateParam(c), from, size)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /bookings/owner?state&from&size
func (h *Controller) ListByOwnerState(c echo.Context) error {
	ownerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	from, size, err := controller.Paging(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	views, err := h.Svc.ListByOwnerState(c.Request().Context(), ownerID, stateParam(c), from, size)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

func stateParam(c echo.Context) string {
	if s := c.QueryParam("state"); s != "" {
		return s
	}
	return "ALL"
}
