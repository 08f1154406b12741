package request

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller"
	requestsvc "shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	requesterID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rq, err := h.Svc.Create(c.Request().Context(), requesterID, req.Description)
	if err != nil {
		h.Log.Error("request create", "err", err, "requester_id", requesterID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, rq)
}

// GET /requests/:requestId
func (h *Controller) Get(c echo.Context) error {
	viewerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	requestID, err := controller.PathID(c, "requestId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	view, err := h.Svc.Get(c.Request().Context(), viewerID, requestID)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /requests
func (h *Controller) ListMine(c echo.Context) error {
	requesterID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	views, err := h.Svc.ListMine(c.Request().Context(), requesterID)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/all?from&size
func (h *Controller) ListOthers(c echo.Context) error {
	viewerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	from, size, err := controller.Paging(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	views, err := h.Svc.ListOthers(c.Request().Context(), viewerID, from, size)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
