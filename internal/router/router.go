package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/meeting-room-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/meeting-room-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Route group under the /v1/auth prefix for operations that do not
	// require an existing session (register, login, refresh, logout).
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body and revokes that session.
	g.POST("/logout", a.Logout)

	// Group for routes that require a valid access token.  All handlers
	// registered here execute the JWTAuth middleware before being invoked.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Both roles may access any authenticated endpoint at this level; the
	// middleware rejects requests with missing or unknown roles.
	auth.Use(middleware.RequireRole("ADMIN", "EMPLOYEE"))
	// Returns the authenticated user's identity as seen by the middleware.
	auth.GET("/me", a.Me)
}
