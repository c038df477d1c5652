package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/repository"
)

// SportCenterHandler exposes public browse endpoints for facilities.
// Responses are cache-friendly; the Redis response cache sits in
// front of these routes.
type SportCenterHandler struct {
    Centers *repository.SportCenterRepo
}

func NewSportCenterHandler(sc *repository.SportCenterRepo) *SportCenterHandler {
    if sc == nil {
        panic("nil repository passed to NewSportCenterHandler")
    }
    return &SportCenterHandler{Centers: sc}
}

// List handles GET /v1/sport-centers.
func (h *SportCenterHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    centers, err := h.Centers.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"sport_centers": centers})
}

// Detail handles GET /v1/sport-centers/:id and includes the center's
// courts.
func (h *SportCenterHandler) Detail(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sport center id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    center, err := h.Centers.GetByID(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sport center not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    courts, err := h.Centers.ListCourts(ctx, id, false)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "sport_center": center,
        "courts":       courts,
    })
}
