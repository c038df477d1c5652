package repository

import (
    "context"
    "database/sql"

    "github.com/letsplay/court-booking/internal/model"
)

// MessageRepo stores user-facing notifications. A message is plain
// text tied to one recipient; there is no delivery or read state.
type MessageRepo struct {
    db *sql.DB
}

// NewMessageRepo returns a new MessageRepo bound to the given database.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// CreateTx appends a message for a recipient within an existing
// transaction, so booking events and their notifications commit
// together.
func (r *MessageRepo) CreateTx(ctx context.Context, tx *sql.Tx, recipientID uint64, content string) error {
    _, err := tx.ExecContext(ctx,
        "INSERT INTO messages (user_id, content) VALUES (?, ?)",
        recipientID, content)
    return err
}

// ListByUser returns the recipient's messages, newest first.
func (r *MessageRepo) ListByUser(ctx context.Context, recipientID uint64) ([]model.Message, error) {
    const q = `SELECT id, user_id, content, created_at
               FROM messages WHERE user_id = ?
               ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, recipientID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Message, 0)
    for rows.Next() {
        var m model.Message
        if err := rows.Scan(&m.ID, &m.UserID, &m.Content, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
