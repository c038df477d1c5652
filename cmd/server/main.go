package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/config"
    "github.com/letsplay/court-booking/internal/database"
    "github.com/letsplay/court-booking/internal/handler"
    "github.com/letsplay/court-booking/internal/middleware"
    "github.com/letsplay/court-booking/internal/queue"
    "github.com/letsplay/court-booking/internal/repository"
    "github.com/letsplay/court-booking/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: with no client both the response cache and
    // the rate limiter degrade to pass-through.
    rdb := config.NewRedisClient()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    centers := repository.NewSportCenterRepo(db)
    reservations := repository.NewReservationRepo(db)
    scores := repository.NewScoreRepo(db)
    stats := repository.NewStatsRepo(db)
    messages := repository.NewMessageRepo(db)

    auth := handler.NewAuthHandler(cfg, users, tokens)
    profile := handler.NewProfileHandler(users, stats, reservations)
    sportCenters := handler.NewSportCenterHandler(centers)
    booking := handler.NewBookingHandler(reservations, centers, users, messages, scores)
    matchmaking := handler.NewMatchmakingHandler(reservations, users)
    score := handler.NewScoreHandler(reservations, scores, stats)
    message := handler.NewMessageHandler(messages)

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterPublic(e, sportCenters, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    router.RegisterBooking(e, booking, matchmaking, score, message, profile, cfg.JWTSecret)

    // Background consumer turns broker events into notification log
    // lines. It reconnects on its own; a missing broker must not keep
    // the API from serving.
    go func() {
        if err := queue.StartNotificationConsumer(); err != nil {
            log.Printf("notification consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
