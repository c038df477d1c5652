package model

import "time"

// Score records the result of a played match. Exactly one score may
// exist per reservation, and it only becomes final once both
// participants have confirmed it.
//
// Fields:
//  ID                 – primary key identifier.
//  ReservationID      – the reservation the score belongs to (unique).
//  MainScore          – sets won by the primary booker.
//  PartnerScore       – sets won by the partner.
//  ConfirmedByMain    – acknowledgement flag of the primary booker.
//  ConfirmedByPartner – acknowledgement flag of the partner.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Score struct {
    ID                 uint64    // scores.id
    ReservationID      uint64    // scores.reservation_id
    MainScore          int       // scores.main_score
    PartnerScore       int       // scores.partner_score
    ConfirmedByMain    bool      // scores.confirmed_by_main
    ConfirmedByPartner bool      // scores.confirmed_by_partner
    CreatedAt          time.Time // scores.created_at
    UpdatedAt          time.Time // scores.updated_at
}

// Confirmed reports whether both participants have acknowledged the
// result. Only confirmed scores feed user statistics.
func (s *Score) Confirmed() bool {
    return s.ConfirmedByMain && s.ConfirmedByPartner
}

// MainWon reports whether the primary booker won. Ties go to the
// partner.
func (s *Score) MainWon() bool {
    return s.MainScore > s.PartnerScore
}

// UserStats aggregates confirmed results per user. A row is created
// lazily on first profile view or first confirmed score.
type UserStats struct {
    ID          uint64 // user_stats.id
    UserID      uint64 // user_stats.user_id
    GamesPlayed int    // user_stats.games_played
    GamesWon    int    // user_stats.games_won
    GamesLost   int    // user_stats.games_lost
    SetsWon     int    // user_stats.sets_won
    SetsLost    int    // user_stats.sets_lost
    Ranking     int    // user_stats.ranking
}

// Message is a stored notification for a single recipient. There is
// no delivery or read-state tracking; messages are only listed.
type Message struct {
    ID        uint64    // messages.id
    UserID    uint64    // messages.user_id (recipient)
    Content   string    // messages.content
    CreatedAt time.Time // messages.created_at
}
