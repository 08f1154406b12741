// app/echoServer/controller/userController.go
package controller

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/model"
	usersvc "shareit/service/user"
)

type UserController struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// POST /users
func (h *UserController) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	u, err := h.Svc.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		h.Log.Error("user create", "err", err)
		return JSONError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users
func (h *UserController) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return JSONError(c, err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GET /users/:userId
func (h *UserController) Get(c echo.Context) error {
	id, err := PathID(c, "userId")
	if err != nil {
		return JSONError(c, err)
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return JSONError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// PATCH /users/:userId
func (h *UserController) Patch(c echo.Context) error {
	id, err := PathID(c, "userId")
	if err != nil {
		return JSONError(c, err)
	}
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	u, err := h.Svc.Patch(c.Request().Context(), id, patch)
	if err != nil {
		h.Log.Error("user patch", "err", err, "user_id", id)
		return JSONError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:userId
func (h *UserController) Delete(c echo.Context) error {
	id, err := PathID(c, "userId")
	if err != nil {
		return JSONError(c, err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return JSONError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
