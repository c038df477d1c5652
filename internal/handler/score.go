package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/model"
    "github.com/letsplay/court-booking/internal/queue"
    "github.com/letsplay/court-booking/internal/repository"
    queue_publisher "github.com/letsplay/court-booking/internal/service"
)

// ScoreHandler records match results and drives the two-party
// confirmation handshake. Statistics aggregation happens inside the
// confirming transaction, guarded by the confirmed transition, so a
// result can never be counted twice.
type ScoreHandler struct {
    Reservations *repository.ReservationRepo
    Scores       *repository.ScoreRepo
    Stats        *repository.StatsRepo
}

func NewScoreHandler(r *repository.ReservationRepo, s *repository.ScoreRepo, st *repository.StatsRepo) *ScoreHandler {
    if r == nil || s == nil || st == nil {
        panic("nil repository passed to NewScoreHandler")
    }
    return &ScoreHandler{Reservations: r, Scores: s, Stats: st}
}

type submitScoreReq struct {
    MainScore    int `json:"main_score"`
    PartnerScore int `json:"partner_score"`
}

// Submit handles POST /v1/reservations/:id/score. A score may only
// be recorded by a participant, once the end time has passed, when a
// partner is present, and at most once per reservation.
func (h *ScoreHandler) Submit(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || reservationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req submitScoreReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.MainScore < 0 || req.PartnerScore < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "scores must be non-negative"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    det, err := h.Reservations.GetDetail(ctx, reservationID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if userID != det.UserMainID && (det.UserPartnerID == nil || *det.UserPartnerID != userID) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this reservation"})
    }
    if det.UserPartnerID == nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation has no partner"})
    }
    res := model.Reservation{Date: det.Date, StartTime: det.StartTime, EndTime: det.EndTime}
    if !res.IsPast(time.Now().UTC()) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "match not finished yet"})
    }

    id, err := h.Scores.Create(ctx, reservationID, req.MainScore, req.PartnerScore)
    if err != nil {
        if errors.Is(err, repository.ErrScoreExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "score already submitted"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submit score failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":             id,
        "reservation_id": reservationID,
        "main_score":     req.MainScore,
        "partner_score":  req.PartnerScore,
    })
}

// Confirm handles POST /v1/reservations/:id/score/confirm. The
// caller's side of the handshake is derived from the reservation, not
// from the request body. When the second flag flips, both players'
// statistics are updated in the same transaction and a
// score.confirmed event goes out.
func (h *ScoreHandler) Confirm(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || reservationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    det, err := h.Reservations.GetDetail(ctx, reservationID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var role repository.Role
    switch {
    case userID == det.UserMainID:
        role = repository.RoleMain
    case det.UserPartnerID != nil && *det.UserPartnerID == userID:
        role = repository.RolePartner
    default:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this reservation"})
    }

    tx, err := h.Scores.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    score, confirmedNow, err := h.Scores.ConfirmTx(ctx, tx, reservationID, role)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "score not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
    }
    if confirmedNow {
        winnerID, loserID := det.UserMainID, *det.UserPartnerID
        winnerSets, loserSets := score.MainScore, score.PartnerScore
        if !score.MainWon() {
            winnerID, loserID = loserID, winnerID
            winnerSets, loserSets = loserSets, winnerSets
        }
        if err := h.Stats.ApplyResultTx(ctx, tx, winnerID, loserID, winnerSets, loserSets); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats update failed"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    if confirmedNow {
        winnerID := det.UserMainID
        if !score.MainWon() {
            winnerID = *det.UserPartnerID
        }
        _ = queue_publisher.PublishScoreConfirmed(ctx, queue.ScoreConfirmedEvent{
            ReservationID: reservationID,
            UserMainID:    det.UserMainID,
            UserPartnerID: *det.UserPartnerID,
            MainScore:     score.MainScore,
            PartnerScore:  score.PartnerScore,
            WinnerID:      winnerID,
            ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
        })
    }

    return c.JSON(http.StatusOK, echo.Map{
        "reservation_id":       reservationID,
        "main_score":           score.MainScore,
        "partner_score":        score.PartnerScore,
        "confirmed_by_main":    score.ConfirmedByMain,
        "confirmed_by_partner": score.ConfirmedByPartner,
        "confirmed":            score.Confirmed(),
    })
}
