package model

import (
    "errors"
    "time"
)

// Layouts for the DATE and TIME columns on reservations. MySQL
// returns these as plain strings; all combination into wall-clock
// instants happens through the helpers below, always in UTC.
const (
    DateLayout = "2006-01-02"
    TimeLayout = "15:04:05"
)

// ErrTimeOrder is returned when a reservation's start time is not
// strictly before its end time.
var ErrTimeOrder = errors.New("start time must be before end time")

// ErrPastDate is returned when a reservation's date and start time
// are not strictly in the future at creation.
var ErrPastDate = errors.New("reservation date must be in the future")

// Reservation is a court booking made by a primary user. A
// reservation with no partner is "open" and discoverable by
// matchmaking; once a partner joins it is "filled".
//
// Fields:
//  ID            – primary key identifier.
//  SportCenterID – facility where the game takes place.
//  CourtID       – optional specific court at the facility.
//  UserMainID    – primary booker (required).
//  UserPartnerID – opponent, set when a second user joins (nullable).
//  Date          – day of play, formatted with DateLayout.
//  StartTime     – start of the slot, formatted with TimeLayout.
//  EndTime       – end of the slot, formatted with TimeLayout.
//  Comment       – optional free-text note from the booker.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
    ID            uint64    // reservations.id
    SportCenterID uint64    // reservations.sport_center_id
    CourtID       *uint64   // reservations.court_id (nullable)
    UserMainID    uint64    // reservations.user_main_id
    UserPartnerID *uint64   // reservations.user_partner_id (nullable)
    Date          string    // reservations.date
    StartTime     string    // reservations.start_time
    EndTime       string    // reservations.end_time
    Comment       *string   // reservations.comment (nullable)
    CreatedAt     time.Time // reservations.created_at
    UpdatedAt     time.Time // reservations.updated_at
}

// IsOpen reports whether the reservation still has no partner and is
// therefore discoverable by matchmaking.
func (r *Reservation) IsOpen() bool { return r.UserPartnerID == nil }

// StartAt combines Date and StartTime into a UTC instant.
func (r *Reservation) StartAt() (time.Time, error) {
    return time.Parse(DateLayout+" "+TimeLayout, r.Date+" "+r.StartTime)
}

// EndAt combines Date and EndTime into a UTC instant.
func (r *Reservation) EndAt() (time.Time, error) {
    return time.Parse(DateLayout+" "+TimeLayout, r.Date+" "+r.EndTime)
}

// IsPast reports whether the reservation's end time lies before now.
// Malformed stored values count as not past.
func (r *Reservation) IsPast(now time.Time) bool {
    end, err := r.EndAt()
    if err != nil {
        return false
    }
    return now.After(end)
}

// Validate checks the invariants enforced before persistence: the
// start must precede the end, and the combined date and start time
// must be strictly after now.
func (r *Reservation) Validate(now time.Time) error {
    start, err := r.StartAt()
    if err != nil {
        return err
    }
    end, err := r.EndAt()
    if err != nil {
        return err
    }
    if !start.Before(end) {
        return ErrTimeOrder
    }
    if !start.After(now) {
        return ErrPastDate
    }
    return nil
}
