package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/letsplay/court-booking/internal/repository"
)

// MessageHandler lists stored notifications for the current user.
type MessageHandler struct {
    Messages *repository.MessageRepo
}

func NewMessageHandler(m *repository.MessageRepo) *MessageHandler {
    if m == nil {
        panic("nil repository passed to NewMessageHandler")
    }
    return &MessageHandler{Messages: m}
}

type messageItem struct {
    ID        uint64 `json:"id"`
    Content   string `json:"content"`
    CreatedAt string `json:"created_at"`
}

// List handles GET /v1/messages, newest first.
func (h *MessageHandler) List(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    msgs, err := h.Messages.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items := make([]messageItem, 0, len(msgs))
    for _, m := range msgs {
        items = append(items, messageItem{
            ID:        m.ID,
            Content:   m.Content,
            CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"messages": items})
}
