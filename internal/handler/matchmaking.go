package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/model"
    "github.com/letsplay/court-booking/internal/repository"
)

// MatchmakingHandler serves the open-slot listing and the search
// form. Both exclude reservations the caller already participates
// in, so the results are always joinable.
type MatchmakingHandler struct {
    Reservations *repository.ReservationRepo
    Users        *repository.UserRepo
}

func NewMatchmakingHandler(r *repository.ReservationRepo, u *repository.UserRepo) *MatchmakingHandler {
    if r == nil || u == nil {
        panic("nil repository passed to NewMatchmakingHandler")
    }
    return &MatchmakingHandler{Reservations: r, Users: u}
}

// Open handles GET /v1/matchmaking/open. It lists open reservations
// whose primary booker plays at the caller's own tier, today or
// later, nearest first.
func (h *MatchmakingHandler) Open(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    items, err := h.Reservations.ListOpenForSkill(ctx, u.Skill, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "skill":        u.Skill.String(),
        "reservations": items,
    })
}

// Search handles GET /v1/matchmaking/search. Query parameters:
// date_start, date_end (inclusive, YYYY-MM-DD), center_id and skill.
func (h *MatchmakingHandler) Search(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    dateStart := strings.TrimSpace(c.QueryParam("date_start"))
    dateEnd := strings.TrimSpace(c.QueryParam("date_end"))
    if _, err := time.Parse(model.DateLayout, dateStart); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_start must be YYYY-MM-DD"})
    }
    if _, err := time.Parse(model.DateLayout, dateEnd); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_end must be YYYY-MM-DD"})
    }
    if dateEnd < dateStart {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_end before date_start"})
    }
    centerID, err := strconv.ParseUint(c.QueryParam("center_id"), 10, 64)
    if err != nil || centerID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid center_id"})
    }
    skillNum, err := strconv.Atoi(c.QueryParam("skill"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid skill"})
    }
    skill, err := model.ParseSkill(skillNum)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "skill must be between 1 and 4"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Reservations.Search(ctx, repository.SearchQuery{
        DateStart:      dateStart,
        DateEnd:        dateEnd,
        SportCenterID:  centerID,
        Skill:          skill,
        RequestingUser: userID,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}
