package router

import (
    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/handler"
    "github.com/letsplay/court-booking/internal/middleware"
)

// RegisterBooking registers every reservation-scoped endpoint under
// /v1. All routes require a valid access token; finer authorization
// (party membership, self-join rejection) is decided in the handlers
// against the reservation itself.
func RegisterBooking(
    e *echo.Echo,
    b *handler.BookingHandler,
    mm *handler.MatchmakingHandler,
    sc *handler.ScoreHandler,
    msg *handler.MessageHandler,
    p *handler.ProfileHandler,
    jwtSecret string,
) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    // Reservation lifecycle.
    g.POST("/reservations", b.Create)
    g.GET("/reservations/:id", b.Detail)
    g.DELETE("/reservations/:id", b.Delete)
    g.POST("/reservations/:id/join", b.Join)

    // Per-user listings.
    g.GET("/reservations/mine", b.ListMine)
    g.GET("/reservations/history", b.ListHistory)
    g.GET("/reservations/joint", b.ListJoint)

    // Partner discovery.
    g.GET("/matchmaking/open", mm.Open)
    g.GET("/matchmaking/search", mm.Search)

    // Score recording and the confirmation handshake.
    g.POST("/reservations/:id/score", sc.Submit)
    g.POST("/reservations/:id/score/confirm", sc.Confirm)

    // Notifications.
    g.GET("/messages", msg.List)

    // Profiles and statistics.
    g.GET("/users/:id", p.Show)
    g.PUT("/me/profile", p.Edit)
}
