package handler

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/model"
    "github.com/letsplay/court-booking/internal/queue"
    "github.com/letsplay/court-booking/internal/repository"
    queue_publisher "github.com/letsplay/court-booking/internal/service"
)

// BookingHandler groups the repositories needed to create, join,
// inspect and delete reservations. All methods assume JWT
// authentication has already been performed by middleware. Join and
// delete run their critical writes inside a transaction.
type BookingHandler struct {
    Reservations *repository.ReservationRepo
    Centers      *repository.SportCenterRepo
    Users        *repository.UserRepo
    Messages     *repository.MessageRepo
    Scores       *repository.ScoreRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories. All dependencies must be non-nil.
func NewBookingHandler(r *repository.ReservationRepo, sc *repository.SportCenterRepo, u *repository.UserRepo, m *repository.MessageRepo, s *repository.ScoreRepo) *BookingHandler {
    if r == nil || sc == nil || u == nil || m == nil || s == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{Reservations: r, Centers: sc, Users: u, Messages: m, Scores: s}
}

type createReservationReq struct {
    SportCenterID uint64  `json:"sport_center_id"`
    CourtID       *uint64 `json:"court_id"`
    Date          string  `json:"date"`       // YYYY-MM-DD
    StartTime     string  `json:"start_time"` // HH:MM or HH:MM:SS
    EndTime       string  `json:"end_time"`
    Comment       *string `json:"comment"`
}

// Create handles POST /v1/reservations. The date and start time must
// lie strictly in the future, the start must precede the end, and
// when a court is named the slot must not overlap an existing
// reservation on that court.
func (h *BookingHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.SportCenterID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "sport_center_id is required"})
    }
    if _, err := time.Parse(model.DateLayout, strings.TrimSpace(req.Date)); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    start, ok := normalizeTime(req.StartTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
    }
    end, ok := normalizeTime(req.EndTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
    }
    if req.Comment != nil && strings.TrimSpace(*req.Comment) == "" {
        req.Comment = nil
    }

    res := model.Reservation{
        SportCenterID: req.SportCenterID,
        CourtID:       req.CourtID,
        UserMainID:    userID,
        Date:          strings.TrimSpace(req.Date),
        StartTime:     start,
        EndTime:       end,
        Comment:       req.Comment,
    }
    if err := res.Validate(time.Now().UTC()); err != nil {
        switch {
        case errors.Is(err, model.ErrTimeOrder):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "start time must be before end time"})
        case errors.Is(err, model.ErrPastDate):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "choose a date in the future"})
        default:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time"})
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // ensure the sport center exists
    if _, err := h.Centers.GetByID(ctx, req.SportCenterID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown sport center"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    // the optional court must belong to the center and be in service
    if req.CourtID != nil {
        court, err := h.Centers.GetCourt(ctx, *req.CourtID)
        if err != nil {
            if err == sql.ErrNoRows {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown court"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if court.SportCenterID != req.SportCenterID {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "court does not belong to sport center"})
        }
        if !court.IsAvailable {
            return c.JSON(http.StatusConflict, echo.Map{"error": "court is out of service"})
        }
    }

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rec := repository.ReservationRecord{
        SportCenterID: res.SportCenterID,
        CourtID:       res.CourtID,
        UserMainID:    res.UserMainID,
        Date:          res.Date,
        StartTime:     res.StartTime,
        EndTime:       res.EndTime,
        Comment:       res.Comment,
    }
    if err := h.Reservations.CreateTx(ctx, tx, &rec); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "court already reserved for that time"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    return c.JSON(http.StatusCreated, echo.Map{
        "id":              rec.ID,
        "sport_center_id": rec.SportCenterID,
        "court_id":        rec.CourtID,
        "user_main_id":    rec.UserMainID,
        "date":            rec.Date,
        "start_time":      rec.StartTime,
        "end_time":        rec.EndTime,
        "comment":         rec.Comment,
        "created_at":      rec.CreatedAt.UTC().Format(time.RFC3339),
    })
}

// Detail handles GET /v1/reservations/:id. Besides the joined
// reservation it reports the recorded score (if any) and two derived
// flags: whether the caller may submit a score now and whether they
// may still cancel.
func (h *BookingHandler) Detail(c echo.Context) error {
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

    var scorePtr *model.Score
    score, err := h.Scores.GetByReservation(ctx, reservationID)
    switch {
    case err == nil:
        scorePtr = &score
    case err == sql.ErrNoRows:
        // no score yet
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    now := time.Now().UTC()
    res := model.Reservation{Date: det.Date, StartTime: det.StartTime, EndTime: det.EndTime}
    past := res.IsPast(now)
    isParty := userID == det.UserMainID ||
        (det.UserPartnerID != nil && *det.UserPartnerID == userID)

    canSubmitScore := past && scorePtr == nil && det.UserPartnerID != nil && isParty
    canCancel := isParty && !past && scorePtr == nil

    resp := echo.Map{
        "reservation":      det,
        "can_submit_score": canSubmitScore,
        "can_cancel":       canCancel,
    }
    if scorePtr != nil {
        resp["score"] = echo.Map{
            "main_score":           scorePtr.MainScore,
            "partner_score":        scorePtr.PartnerScore,
            "confirmed_by_main":    scorePtr.ConfirmedByMain,
            "confirmed_by_partner": scorePtr.ConfirmedByPartner,
            "confirmed":            scorePtr.Confirmed(),
        }
    }
    return c.JSON(http.StatusOK, resp)
}

// Join handles POST /v1/reservations/:id/join. The partner slot is
// claimed with an atomic conditional update, a notification message
// for the primary booker commits in the same transaction, and a
// partner.joined event is published after commit.
func (h *BookingHandler) Join(c echo.Context) error {
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

    joiner, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    mainID, err := h.Reservations.JoinTx(ctx, tx, reservationID, userID)
    if err != nil {
        switch {
        case err == sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot join your own reservation"})
        case errors.Is(err, repository.ErrAlreadyFilled):
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already filled"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "join failed"})
        }
    }
    notice := fmt.Sprintf("%s joined your reservation", joiner.Email)
    if err := h.Messages.CreateTx(ctx, tx, mainID, notice); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "notify failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    // Event publishing is best-effort; the join already committed.
    if det, derr := h.Reservations.GetDetail(ctx, reservationID); derr == nil {
        _ = queue_publisher.PublishPartnerJoined(ctx, queue.PartnerJoinedEvent{
            ReservationID:   reservationID,
            UserMainID:      mainID,
            UserPartnerID:   userID,
            PartnerEmail:    joiner.Email,
            SportCenterName: det.SportCenterName,
            Date:            det.Date,
            StartTime:       det.StartTime,
            JoinedAt:        time.Now().UTC().Format(time.RFC3339),
        })
    }

    return c.JSON(http.StatusOK, echo.Map{
        "reservation_id":  reservationID,
        "user_partner_id": userID,
    })
}

// Delete handles DELETE /v1/reservations/:id. Only a party to the
// reservation may delete it; the score, if one exists, is removed in
// the same transaction.
func (h *BookingHandler) Delete(c echo.Context) error {
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

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.Reservations.DeleteTx(ctx, tx, reservationID, userID); err != nil {
        switch {
        case err == sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this reservation"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.NoContent(http.StatusNoContent)
}

// ListMine handles GET /v1/reservations/mine (future games).
func (h *BookingHandler) ListMine(c echo.Context) error {
    return h.list(c, h.Reservations.ListUpcoming)
}

// ListHistory handles GET /v1/reservations/history (past games).
func (h *BookingHandler) ListHistory(c echo.Context) error {
    return h.list(c, h.Reservations.ListHistory)
}

// ListJoint handles GET /v1/reservations/joint (future games with
// both players set).
func (h *BookingHandler) ListJoint(c echo.Context) error {
    return h.list(c, h.Reservations.ListFutureJoint)
}

func (h *BookingHandler) list(c echo.Context, fetch func(context.Context, uint64) ([]repository.ReservationDetail, error)) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := fetch(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}
