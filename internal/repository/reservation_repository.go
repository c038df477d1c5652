package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/letsplay/court-booking/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. A
// reservation belongs to a sport center, optionally names a specific
// court, and carries a primary user plus an optional partner filled
// in by matchmaking. All DATE/TIME comparisons run against the
// database clock so that listings stay consistent across app
// instances.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRecord mirrors the schema of the reservations table. It
// is used by the repository when constructing or scanning rows;
// business logic should use the model.Reservation type instead.
type ReservationRecord struct {
    ID            uint64
    SportCenterID uint64
    CourtID       *uint64
    UserMainID    uint64
    UserPartnerID *uint64
    Date          string
    StartTime     string
    EndTime       string
    Comment       *string
    CreatedAt     time.Time
    UpdatedAt     time.Time
}

// CreateTx inserts a new open reservation within the scope of an
// existing transaction and populates the generated ID on the record.
// When a court is named, the slot is first checked for overlap with
// existing reservations on the same court and date; a clash returns
// ErrConflict. The caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *ReservationRecord) error {
    if rec.CourtID != nil {
        const overlapQ = `SELECT COUNT(*) FROM reservations
                          WHERE court_id = ? AND date = ?
                            AND start_time < ? AND end_time > ?`
        var n int
        err := tx.QueryRowContext(ctx, overlapQ,
            *rec.CourtID, rec.Date, rec.EndTime, rec.StartTime).Scan(&n)
        if err != nil {
            return err
        }
        if n > 0 {
            return ErrConflict
        }
    }
    const q = `INSERT INTO reservations
               (sport_center_id, court_id, user_main_id, date, start_time, end_time, comment)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        rec.SportCenterID, rec.CourtID, rec.UserMainID,
        rec.Date, rec.StartTime, rec.EndTime, rec.Comment)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    rec.ID = uint64(id)
    // Query back timestamps and defaults populated by the database.
    const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, rec.ID).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// JoinTx sets the partner on an open reservation. The partner column
// is only written when it is still NULL, so two concurrent joins can
// never both succeed. It returns the primary user's ID for
// notification purposes. Joining one's own reservation returns
// ErrForbidden; a reservation that already has a partner returns
// ErrAlreadyFilled; an unknown ID returns sql.ErrNoRows.
func (r *ReservationRepo) JoinTx(ctx context.Context, tx *sql.Tx, reservationID, partnerID uint64) (uint64, error) {
    const q = `SELECT user_main_id FROM reservations WHERE id = ?`
    var mainID uint64
    if err := tx.QueryRowContext(ctx, q, reservationID).Scan(&mainID); err != nil {
        return 0, err
    }
    if mainID == partnerID {
        return 0, ErrForbidden
    }
    const upd = `UPDATE reservations
                 SET user_partner_id = ?, updated_at = NOW()
                 WHERE id = ? AND user_partner_id IS NULL`
    result, err := tx.ExecContext(ctx, upd, partnerID, reservationID)
    if err != nil {
        return 0, err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return 0, err
    }
    if n == 0 {
        return 0, ErrAlreadyFilled
    }
    return mainID, nil
}

// DeleteTx removes a reservation and its score, if any. Only a party
// to the reservation (main or partner) may delete it; anyone else
// gets ErrForbidden. The score row is removed first so the cascade
// is explicit and observable in tests.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, reservationID, actorID uint64) error {
    const q = `SELECT user_main_id, user_partner_id FROM reservations WHERE id = ?`
    var (
        mainID    uint64
        partnerID sql.NullInt64
    )
    if err := tx.QueryRowContext(ctx, q, reservationID).Scan(&mainID, &partnerID); err != nil {
        return err
    }
    if actorID != mainID && !(partnerID.Valid && uint64(partnerID.Int64) == actorID) {
        return ErrForbidden
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE reservation_id = ?`, reservationID); err != nil {
        return err
    }
    _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, reservationID)
    return err
}

// ReservationDetail is a reservation joined with its sport center,
// court and participants, as rendered to clients.
type ReservationDetail struct {
    ID               uint64  `json:"id"`
    SportCenterID    uint64  `json:"sport_center_id"`
    SportCenterName  string  `json:"sport_center_name"`
    CourtID          *uint64 `json:"court_id,omitempty"`
    RoomNumber       *int    `json:"room_number,omitempty"`
    UserMainID       uint64  `json:"user_main_id"`
    UserMainEmail    string  `json:"user_main_email"`
    UserMainSkill    string  `json:"user_main_skill"`
    UserPartnerID    *uint64 `json:"user_partner_id,omitempty"`
    UserPartnerEmail *string `json:"user_partner_email,omitempty"`
    Date             string  `json:"date"`
    StartTime        string  `json:"start_time"`
    EndTime          string  `json:"end_time"`
    Comment          *string `json:"comment,omitempty"`
}

const detailSelect = `SELECT r.id, r.sport_center_id, sc.name,
                             r.court_id, co.room_number,
                             r.user_main_id, um.email, um.skill,
                             r.user_partner_id, up.email,
                             r.date, r.start_time, r.end_time, r.comment
                      FROM reservations r
                      JOIN sport_centers sc ON sc.id = r.sport_center_id
                      JOIN users um ON um.id = r.user_main_id
                      LEFT JOIN users up ON up.id = r.user_partner_id
                      LEFT JOIN courts co ON co.id = r.court_id`

// scanDetail reads one joined row into a ReservationDetail.
func scanDetail(scan func(dest ...interface{}) error) (*ReservationDetail, error) {
    var (
        det          ReservationDetail
        courtID      sql.NullInt64
        roomNumber   sql.NullInt64
        mainSkill    uint8
        partnerID    sql.NullInt64
        partnerEmail sql.NullString
        date         time.Time
        comment      sql.NullString
    )
    err := scan(
        &det.ID, &det.SportCenterID, &det.SportCenterName,
        &courtID, &roomNumber,
        &det.UserMainID, &det.UserMainEmail, &mainSkill,
        &partnerID, &partnerEmail,
        &date, &det.StartTime, &det.EndTime, &comment,
    )
    if err != nil {
        return nil, err
    }
    if courtID.Valid {
        id := uint64(courtID.Int64)
        det.CourtID = &id
    }
    if roomNumber.Valid {
        n := int(roomNumber.Int64)
        det.RoomNumber = &n
    }
    det.UserMainSkill = model.Skill(mainSkill).String()
    if partnerID.Valid {
        id := uint64(partnerID.Int64)
        det.UserPartnerID = &id
    }
    if partnerEmail.Valid {
        e := partnerEmail.String
        det.UserPartnerEmail = &e
    }
    det.Date = date.Format(model.DateLayout)
    if comment.Valid {
        cm := comment.String
        det.Comment = &cm
    }
    return &det, nil
}

// GetDetail returns a single reservation with joined facility and
// participant information. sql.ErrNoRows is returned when the
// reservation does not exist.
func (r *ReservationRepo) GetDetail(ctx context.Context, reservationID uint64) (*ReservationDetail, error) {
    row := r.db.QueryRowContext(ctx, detailSelect+` WHERE r.id = ?`, reservationID)
    return scanDetail(row.Scan)
}

// listDetails runs a detail query returning multiple rows.
func (r *ReservationRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]ReservationDetail, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ReservationDetail, 0)
    for rows.Next() {
        det, err := scanDetail(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *det)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListOpenForSkill returns reservations still looking for a partner
// whose primary user plays at the given tier, today or later,
// excluding the caller's own bookings. Ordered by date then start
// time so the nearest slot comes first.
func (r *ReservationRepo) ListOpenForSkill(ctx context.Context, skill model.Skill, excludeUserID uint64) ([]ReservationDetail, error) {
    const q = detailSelect + `
        WHERE r.user_partner_id IS NULL
          AND r.date >= CURDATE()
          AND um.skill = ?
          AND r.user_main_id <> ?
        ORDER BY r.date, r.start_time`
    return r.listDetails(ctx, q, uint8(skill), excludeUserID)
}

// SearchQuery defines the matchmaking search filters: an inclusive
// date range, a facility and the desired opponent tier. Reservations
// where the requesting user already participates are excluded.
type SearchQuery struct {
    DateStart      string
    DateEnd        string
    SportCenterID  uint64
    Skill          model.Skill
    RequestingUser uint64
}

// Search returns reservations matching the query.
func (r *ReservationRepo) Search(ctx context.Context, q SearchQuery) ([]ReservationDetail, error) {
    const query = detailSelect + `
        WHERE r.date >= ? AND r.date <= ?
          AND r.sport_center_id = ?
          AND um.skill = ?
          AND r.user_main_id <> ?
          AND (r.user_partner_id IS NULL OR r.user_partner_id <> ?)
        ORDER BY r.date, r.start_time`
    return r.listDetails(ctx, query,
        q.DateStart, q.DateEnd, q.SportCenterID, uint8(q.Skill),
        q.RequestingUser, q.RequestingUser)
}

// ListUpcoming returns the user's future games (as main or partner),
// ascending by date.
func (r *ReservationRepo) ListUpcoming(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    const q = detailSelect + `
        WHERE (r.user_main_id = ? OR r.user_partner_id = ?)
          AND r.date > CURDATE()
        ORDER BY r.date, r.start_time`
    return r.listDetails(ctx, q, userID, userID)
}

// ListHistory returns the user's past games, ascending by date.
func (r *ReservationRepo) ListHistory(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    const q = detailSelect + `
        WHERE (r.user_main_id = ? OR r.user_partner_id = ?)
          AND r.date < CURDATE()
        ORDER BY r.date, r.start_time`
    return r.listDetails(ctx, q, userID, userID)
}

// ListFutureJoint returns the user's future games that already have
// both players set.
func (r *ReservationRepo) ListFutureJoint(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    const q = detailSelect + `
        WHERE (r.user_main_id = ? OR r.user_partner_id = ?)
          AND r.user_partner_id IS NOT NULL
          AND r.date > CURDATE()
        ORDER BY r.date, r.start_time`
    return r.listDetails(ctx, q, userID, userID)
}

// ListByUser returns every reservation the user participates in,
// newest first. Used on the profile page.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    const q = detailSelect + `
        WHERE (r.user_main_id = ? OR r.user_partner_id = ?)
        ORDER BY r.date DESC, r.start_time DESC`
    return r.listDetails(ctx, q, userID, userID)
}
