package router

import (
	"github.com/iliyamo/meeting-room-reservation/internal/handler"
	"github.com/iliyamo/meeting-room-reservation/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRooms registers the meeting-room endpoints. Browsing rooms is
// public so anyone can see what exists before authenticating; creating,
// renaming and deleting rooms requires a valid JWT with the ADMIN role.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, jwtSecret string) {
	// Public browse endpoints.
	e.GET("/v1/rooms", h.List)
	e.GET("/v1/rooms/:id", h.Get)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.POST("/rooms", h.Create)
	admin.PATCH("/rooms/:id", h.Update)
	admin.DELETE("/rooms/:id", h.Delete)
}
