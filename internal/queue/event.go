// Package queue defines message payloads exchanged over the message broker.
package queue

// PartnerJoinedEvent is published when a second player joins an open
// reservation. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type PartnerJoinedEvent struct {
    ReservationID   uint64 `json:"reservation_id"`
    UserMainID      uint64 `json:"user_main_id"`
    UserPartnerID   uint64 `json:"user_partner_id"`
    PartnerEmail    string `json:"partner_email"`
    SportCenterName string `json:"sport_center_name"`
    Date            string `json:"date"`
    StartTime       string `json:"start_time"`
    JoinedAt        string `json:"joined_at"`
}

// ScoreConfirmedEvent is published when both participants have
// acknowledged a recorded score and the result became final.
type ScoreConfirmedEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    UserMainID    uint64 `json:"user_main_id"`
    UserPartnerID uint64 `json:"user_partner_id"`
    MainScore     int    `json:"main_score"`
    PartnerScore  int    `json:"partner_score"`
    WinnerID      uint64 `json:"winner_id"`
    ConfirmedAt   string `json:"confirmed_at"`
}
