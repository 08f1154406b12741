package gateway

import "github.com/labstack/echo/v4"

func Register(e *echo.Echo, g *Controller) {
	// Users
	e.POST("/users", g.CreateUser)
	e.GET("/users", g.Plain)
	e.GET("/users/:userId", g.Plain)
	e.PATCH("/users/:userId", g.PatchUser)
	e.DELETE("/users/:userId", g.Plain)

	// Items
	e.POST("/items", g.CreateItem)
	e.PATCH("/items/:itemId", g.WithUser)
	e.DELETE("/items/:itemId", g.WithUser)
	e.GET("/items/search", g.WithUser)
	e.GET("/items/:itemId", g.WithUser)
	e.GET("/items", g.WithUser)
	e.POST("/items/:itemId/comment", g.AddComment)

	// Bookings
	e.POST("/bookings", g.CreateBooking)
	e.PATCH("/bookings/:bookingId", g.ChangeBookingStatus)
	e.GET("/bookings/owner", g.WithUser)
	e.GET("/bookings/:bookingId", g.WithUser)
	e.GET("/bookings", g.WithUser)

	// Requests
	e.POST("/requests", g.CreateRequest)
	e.GET("/requests/all", g.WithUser)
	e.GET("/requests/:requestId", g.WithUser)
	e.GET("/requests", g.WithUser)
}
