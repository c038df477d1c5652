package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/model"
    "github.com/letsplay/court-booking/internal/repository"
)

// ProfileHandler serves public profiles and profile editing. The
// stats row for a user is created lazily on first profile view.
type ProfileHandler struct {
    Users        *repository.UserRepo
    Stats        *repository.StatsRepo
    Reservations *repository.ReservationRepo
}

func NewProfileHandler(u *repository.UserRepo, s *repository.StatsRepo, r *repository.ReservationRepo) *ProfileHandler {
    if u == nil || s == nil || r == nil {
        panic("nil repository passed to NewProfileHandler")
    }
    return &ProfileHandler{Users: u, Stats: s, Reservations: r}
}

type profileUser struct {
    ID        uint64  `json:"id"`
    Email     string  `json:"email"`
    Skill     string  `json:"skill"`
    AvatarURL *string `json:"avatar_url,omitempty"`
}

type profileStats struct {
    GamesPlayed int `json:"games_played"`
    GamesWon    int `json:"games_won"`
    GamesLost   int `json:"games_lost"`
    SetsWon     int `json:"sets_won"`
    SetsLost    int `json:"sets_lost"`
    Ranking     int `json:"ranking"`
}

// Show handles GET /v1/users/:id. It returns the user, their lazily
// created statistics and every reservation they participate in.
func (h *ProfileHandler) Show(c echo.Context) error {
    userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || userID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    st, err := h.Stats.GetOrCreate(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    games, err := h.Reservations.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "user": profileUser{ID: u.ID, Email: u.Email, Skill: u.Skill.String(), AvatarURL: u.AvatarURL},
        "stats": profileStats{
            GamesPlayed: st.GamesPlayed,
            GamesWon:    st.GamesWon,
            GamesLost:   st.GamesLost,
            SetsWon:     st.SetsWon,
            SetsLost:    st.SetsLost,
            Ranking:     st.Ranking,
        },
        "reservations": games,
    })
}

type editProfileReq struct {
    Skill     int     `json:"skill"`
    AvatarURL *string `json:"avatar_url"`
}

// Edit handles PUT /v1/me/profile. Users can change their skill tier
// and the reference to their externally stored avatar; the file
// itself never passes through this service.
func (h *ProfileHandler) Edit(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req editProfileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    skill, err := model.ParseSkill(req.Skill)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "skill must be between 1 and 4"})
    }
    if req.AvatarURL != nil && strings.TrimSpace(*req.AvatarURL) == "" {
        req.AvatarURL = nil
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.UpdateProfile(ctx, userID, skill, req.AvatarURL); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":         userID,
        "skill":      skill.String(),
        "avatar_url": req.AvatarURL,
    })
}
