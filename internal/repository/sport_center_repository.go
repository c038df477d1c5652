package repository

import (
    "context"
    "database/sql"

    "github.com/letsplay/court-booking/internal/model"
)

// SportCenterRepo provides read access to sport centers and their
// courts. Centers are seeded administratively; the API only browses
// them.
type SportCenterRepo struct {
    db *sql.DB
}

// NewSportCenterRepo returns a new SportCenterRepo bound to the given database.
func NewSportCenterRepo(db *sql.DB) *SportCenterRepo { return &SportCenterRepo{db: db} }

// List returns all sport centers ordered by name.
func (r *SportCenterRepo) List(ctx context.Context) ([]model.SportCenter, error) {
    const q = `SELECT id, name, address, phone, slug, created_at
               FROM sport_centers
               ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.SportCenter, 0)
    for rows.Next() {
        var sc model.SportCenter
        if err := rows.Scan(&sc.ID, &sc.Name, &sc.Address, &sc.Phone, &sc.Slug, &sc.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, sc)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns a single sport center. sql.ErrNoRows is returned
// when the center does not exist.
func (r *SportCenterRepo) GetByID(ctx context.Context, id uint64) (model.SportCenter, error) {
    const q = `SELECT id, name, address, phone, slug, created_at
               FROM sport_centers WHERE id = ?`
    var sc model.SportCenter
    err := r.db.QueryRowContext(ctx, q, id).
        Scan(&sc.ID, &sc.Name, &sc.Address, &sc.Phone, &sc.Slug, &sc.CreatedAt)
    if err != nil {
        return model.SportCenter{}, err
    }
    return sc, nil
}

// ListCourts returns the courts of a sport center ordered by room
// number. Pass onlyAvailable to exclude courts that are out of
// service.
func (r *SportCenterRepo) ListCourts(ctx context.Context, centerID uint64, onlyAvailable bool) ([]model.Court, error) {
    q := `SELECT id, sport_center_id, room_number, is_available
          FROM courts WHERE sport_center_id = ?`
    if onlyAvailable {
        q += ` AND is_available = 1`
    }
    q += ` ORDER BY room_number`
    rows, err := r.db.QueryContext(ctx, q, centerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Court, 0)
    for rows.Next() {
        var c model.Court
        if err := rows.Scan(&c.ID, &c.SportCenterID, &c.RoomNumber, &c.IsAvailable); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetCourt returns a single court. Used to validate the optional
// court selection when creating a reservation.
func (r *SportCenterRepo) GetCourt(ctx context.Context, courtID uint64) (model.Court, error) {
    const q = `SELECT id, sport_center_id, room_number, is_available
               FROM courts WHERE id = ?`
    var c model.Court
    err := r.db.QueryRowContext(ctx, q, courtID).
        Scan(&c.ID, &c.SportCenterID, &c.RoomNumber, &c.IsAvailable)
    if err != nil {
        return model.Court{}, err
    }
    return c, nil
}
