package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/letsplay/court-booking/internal/model"
)

// Role identifies which side of a reservation a confirmation comes
// from.
type Role string

const (
    RoleMain    Role = "main"
    RolePartner Role = "partner"
)

// ScoreRepo persists match scores and the two-party confirmation
// handshake. Scores are one-to-one with reservations, enforced by a
// unique key on reservation_id.
type ScoreRepo struct {
    db *sql.DB
}

// NewScoreRepo returns a new ScoreRepo bound to the given database.
func NewScoreRepo(db *sql.DB) *ScoreRepo { return &ScoreRepo{db: db} }

// DB exposes the underlying handle for handler-managed transactions.
func (r *ScoreRepo) DB() *sql.DB { return r.db }

// Create inserts a score for a reservation with both confirmation
// flags false. A second insert for the same reservation violates the
// unique key and maps to ErrScoreExists.
func (r *ScoreRepo) Create(ctx context.Context, reservationID uint64, mainScore, partnerScore int) (uint64, error) {
    const q = `INSERT INTO scores (reservation_id, main_score, partner_score)
               VALUES (?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q, reservationID, mainScore, partnerScore)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrScoreExists
        }
        return 0, err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByReservation returns the score recorded for a reservation, or
// sql.ErrNoRows when none has been submitted yet.
func (r *ScoreRepo) GetByReservation(ctx context.Context, reservationID uint64) (model.Score, error) {
    const q = `SELECT id, reservation_id, main_score, partner_score,
                      confirmed_by_main, confirmed_by_partner, created_at, updated_at
               FROM scores WHERE reservation_id = ?`
    var s model.Score
    err := r.db.QueryRowContext(ctx, q, reservationID).Scan(
        &s.ID, &s.ReservationID, &s.MainScore, &s.PartnerScore,
        &s.ConfirmedByMain, &s.ConfirmedByPartner, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        return model.Score{}, err
    }
    return s, nil
}

// ConfirmTx sets the confirmation flag for one side of the handshake
// within a transaction. The UPDATE only touches rows where the flag
// is still false, so re-confirming the same side affects zero rows
// and can never re-trigger downstream aggregation. It returns the
// score as it stands after the update and whether this call flipped
// the score into the fully confirmed state.
func (r *ScoreRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, reservationID uint64, role Role) (model.Score, bool, error) {
    var col string
    switch role {
    case RoleMain:
        col = "confirmed_by_main"
    case RolePartner:
        col = "confirmed_by_partner"
    default:
        return model.Score{}, false, ErrForbidden
    }
    upd := `UPDATE scores SET ` + col + ` = 1, updated_at = NOW()
            WHERE reservation_id = ? AND ` + col + ` = 0`
    result, err := tx.ExecContext(ctx, upd, reservationID)
    if err != nil {
        return model.Score{}, false, err
    }
    flipped, err := result.RowsAffected()
    if err != nil {
        return model.Score{}, false, err
    }
    const sel = `SELECT id, reservation_id, main_score, partner_score,
                        confirmed_by_main, confirmed_by_partner, created_at, updated_at
                 FROM scores WHERE reservation_id = ?`
    var s model.Score
    err = tx.QueryRowContext(ctx, sel, reservationID).Scan(
        &s.ID, &s.ReservationID, &s.MainScore, &s.PartnerScore,
        &s.ConfirmedByMain, &s.ConfirmedByPartner, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        return model.Score{}, false, err
    }
    // Aggregation must run exactly once: only the call that wrote the
    // final missing flag reports the confirmed transition.
    return s, flipped > 0 && s.Confirmed(), nil
}
