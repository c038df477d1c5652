package model

import "time"

// SportCenter is a facility that owns one or more courts. The slug
// is a URL-friendly identifier used by public browse endpoints.
type SportCenter struct {
    ID        uint64    `json:"id"`         // sport_centers.id
    Name      string    `json:"name"`       // sport_centers.name
    Address   string    `json:"address"`    // sport_centers.address
    Phone     string    `json:"phone"`      // sport_centers.phone
    Slug      string    `json:"slug"`       // sport_centers.slug
    CreatedAt time.Time `json:"created_at"` // sport_centers.created_at
}

// Court belongs to exactly one sport center. IsAvailable marks
// courts that are temporarily out of service and excluded from
// booking.
type Court struct {
    ID            uint64 `json:"id"`              // courts.id
    SportCenterID uint64 `json:"sport_center_id"` // courts.sport_center_id
    RoomNumber    int    `json:"room_number"`     // courts.room_number
    IsAvailable   bool   `json:"is_available"`    // courts.is_available
}
