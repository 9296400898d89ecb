package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/handler"
	"github.com/vestbyenif/volunteer-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and uptime monitors to verify the service
	// is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the administrator login endpoint and the
// protected /v1/admin/me probe.  There is no registration and no refresh
// flow: the single admin credential lives in configuration and access
// tokens are simply re-issued by logging in again.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse and signup
// endpoints.  Responses are sanitized: hidden rows and volunteer contact
// details never appear here.  The optional cache middleware is applied
// to the read endpoints only; the signup endpoint must never serve a
// cached response.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	reads := e.Group("/v1")
	if cache != nil {
		reads.Use(cache)
	}
	// All visible events, ordered by date
	reads.GET("/events", p.ListEvents)
	// Event detail with its tasks and signup counts
	reads.GET("/events/:slug", p.GetEventBySlug)
	// Task detail with time slots and remaining capacity
	reads.GET("/tasks/:id", p.GetTask)

	// Volunteer registration; capacity-checked, 409 when the slot is full
	e.POST("/v1/tasks/:id/signups", p.CreateSignup)
}

// RegisterAdmin registers the administration endpoints under /v1/admin.
// Every route requires a valid access token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	// Events and their table families
	g.POST("/events", a.CreateEvent)
	g.GET("/events", a.ListEvents)
	g.PUT("/events/:id", a.UpdateEvent)
	g.DELETE("/events/:id", a.DeleteEvent)
	// Suffix-addressed drop for families missing their seed row
	g.DELETE("/families/:n", a.DeleteFamily)

	// Visibility and manual ordering
	g.PATCH("/events/:id/visibility", a.ToggleEventVisibility)
	g.PATCH("/tasks/:id/visibility", a.ToggleTaskVisibility)
	g.PUT("/events/:id/task-order", a.UpdateTaskOrder)

	// Tasks and time slots
	g.POST("/families/:n/tasks", a.CreateTask)
	g.PUT("/tasks/:id", a.UpdateTask)
	g.DELETE("/tasks/:id", a.DeleteTask)
	g.DELETE("/timeslots/:id", a.DeleteTimeSlot)

	// Full signup rows including contact details
	g.GET("/tasks/:id/signups", a.ListTaskSignups)
}
