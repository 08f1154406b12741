package echoServer

import (
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller"
	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
)

type C struct {
	User    *controller.UserController
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.List)
	e.GET("/users/:userId", c.User.Get)
	e.PATCH("/users/:userId", c.User.Patch)
	e.DELETE("/users/:userId", c.User.Delete)

	// Items
	e.POST("/items", c.Item.Create)
	e.PATCH("/items/:itemId", c.Item.Patch)
	e.DELETE("/items/:itemId", c.Item.Delete)
	e.GET("/items/search", c.Item.Search)
	e.GET("/items/:itemId", c.Item.Detail)
	e.GET("/items", c.Item.ListByOwner)
	e.POST("/items/:itemId/comment", c.Item.AddComment)

	// Bookings
	e.POST("/bookings", c.Booking.Create)
	e.PATCH("/bookings/:bookingId", c.Booking.ChangeStatus)
	e.GET("/bookings/owner", c.Booking.ListByOwnerState)
	e.GET("/bookings/:bookingId", c.Booking.Get)
	e.GET("/bookings", c.Booking.ListByState)

	// Requests
	e.POST("/requests", c.Request.Create)
	e.GET("/requests/all", c.Request.ListOthers)
	e.GET("/requests/:requestId", c.Request.Get)
	e.GET("/requests", c.Request.ListMine)
}
