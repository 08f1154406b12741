package item

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller"
	"shareit/model"
	itemsvc "shareit/service/item"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	ownerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	it, err := h.Svc.Create(c.Request().Context(), ownerID, itemsvc.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		h.Log.Error("item create", "err", err, "owner_id", ownerID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// PATCH /items/:itemId
func (h *Controller) Patch(c echo.Context) error {
	userID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	itemID, err := controller.PathID(c, "itemId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	var patch model.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	it, err := h.Svc.Patch(c.Request().Context(), userID, itemID, patch)
	if err != nil {
		h.Log.Error("item patch", "err", err, "item_id", itemID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// DELETE /items/:itemId
func (h *Controller) Delete(c echo.Context) error {
	if _, err := controller.UserID(c); err != nil {
		return controller.JSONError(c, err)
	}
	itemID, err := controller.PathID(c, "itemId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	if err := h.Svc.Delete(c.Request().Context(), itemID); err != nil {
		return controller.JSONError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// GET /items/:itemId
func (h *Controller) Detail(c echo.Context) error {
	viewerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	itemID, err := controller.PathID(c, "itemId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	view, err := h.Svc.Detail(c.Request().Context(), itemID, viewerID)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /items
func (h *Controller) ListByOwner(c echo.Context) error {
	ownerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	from, size, err := controller.Paging(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	views, err := h.Svc.ListByOwner(c.Request().Context(), ownerID, from, size)
	if err != nil {
		h.Log.Error("item list", "err", err, "owner_id", ownerID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/search
func (h *Controller) Search(c echo.Context) error {
	viewerID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	from, size, err := controller.Paging(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	items, err := h.Svc.Search(c.Request().Context(), viewerID, c.QueryParam("text"), from, size)
	if err != nil {
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:itemId/comment
func (h *Controller) AddComment(c echo.Context) error {
	authorID, err := controller.UserID(c)
	if err != nil {
		return controller.JSONError(c, err)
	}
	itemID, err := controller.PathID(c, "itemId")
	if err != nil {
		return controller.JSONError(c, err)
	}
	var req AddCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	comment, err := h.Svc.AddComment(c.Request().Context(), itemID, authorID, req.Text)
	if err != nil {
		h.Log.Error("comment add", "err", err, "item_id", itemID)
		return controller.JSONError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}
