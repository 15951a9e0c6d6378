package router

import (
	"github.com/iliyamo/meeting-room-reservation/internal/handler"
	"github.com/iliyamo/meeting-room-reservation/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterReservations registers reservation endpoints under /v1. All
// routes require a valid JWT; both roles may book rooms. Ownership of
// individual reservations is enforced inside the handler so that an
// ADMIN can also amend or remove other users' bookings.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "EMPLOYEE"),
	)
	g.POST("/reservations", h.Create)
	g.PATCH("/reservations/:id", h.Update)
	g.DELETE("/reservations/:id", h.Delete)
	g.GET("/my-reservations", h.ListMine)
	// Upcoming reservations for a room, so callers can find a free slot.
	g.GET("/rooms/:id/reservations", h.RoomReservations)
}
