package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing

	"github.com/iliyamo/movie-reservation/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/movie-reservation/internal/middleware" // JWT authentication middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// refresh and logout do not require a session; they create or exchange one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterMovies registers the public catalog proxy endpoints.  Browsing
// does not require authentication; only booking does.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/movies", mw...)
	g.GET("", m.List)
	g.GET("/:id", m.GetByID)
}

// RegisterProtected registers the endpoints that require a valid access
// token: reservation management and the caller's own profile.
func RegisterProtected(e *echo.Echo, r *handler.ReservationHandler, u *handler.UserHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	res := e.Group("/reservations", auth)
	res.GET("", r.List)
	res.POST("", r.Create)
	res.DELETE("/:id", r.Delete)

	e.GET("/users/me", u.Me, auth)
}
