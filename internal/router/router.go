// Package router wires HTTP routes to their handlers.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/handler"
    "github.com/letsplay/court-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token: the old one is revoked and a
    // new pair is issued.
    g.POST("/refresh", a.Refresh)
    // Logout takes the refresh token in the body rather than a JWT, so
    // a client with an expired access token can still end its session.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints for
// sport centers and their courts. The Redis response cache sits in
// front of these routes since facility data changes rarely.
func RegisterPublic(e *echo.Echo, sc *handler.SportCenterHandler, cache echo.MiddlewareFunc) {
    e.GET("/v1/sport-centers", sc.List, cache)
    e.GET("/v1/sport-centers/:id", sc.Detail, cache)
}
