// Package router wires the HTTP routes of the users/events API. All
// business endpoints live under /api/v1; the health check sits at the
// root so probes stay version-independent.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/handler"
	"github.com/waseet/event-social/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Auth         *handler.AuthHandler
	Events       *handler.EventHandler
	Users        *handler.UserHandler
	UserLoader   middleware.UserLoader
	AccessSecret string
}

// Register mounts all routes on the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1")

	// Unauthenticated: account creation and token exchange.
	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)

	// Everything below requires a valid access token and a live account.
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(d.AccessSecret))
	protected.Use(middleware.LoadUser(d.UserLoader))

	protected.GET("/user", d.Users.Me)
	protected.PATCH("/user/profile", d.Users.UpdateProfile)

	events := protected.Group("/events")
	events.POST("", d.Events.Create)
	events.GET("", d.Events.List)
	events.GET("/user/list", d.Events.ListUser)
	// Request routes are registered before /:id so "requests" is never
	// captured as an event id.
	events.POST("/requests/join", d.Events.Join)
	events.GET("/requests/list", d.Events.Requests)
	events.POST("/requests/action", d.Events.Decide)
	events.GET("/:id", d.Events.Get)
}
