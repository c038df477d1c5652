// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to HTTP responses. Row absence is signalled with sql.ErrNoRows
// as returned by the database/sql package.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// reservation they are not a party to, such as deleting someone
// else's booking or joining their own. Handlers should translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a new reservation overlaps an existing
// one on the same court and date. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrAlreadyFilled is returned when a user tries to join a
// reservation that already has a partner. The conditional update
// that detects this is atomic, so two concurrent joins can never
// both succeed.
var ErrAlreadyFilled = errors.New("reservation already filled")

// ErrScoreExists is returned when a score has already been submitted
// for a reservation. Scores are one-to-one with reservations.
var ErrScoreExists = errors.New("score already exists")

// ErrEmailExists is returned by user creation when the email address
// is already registered.
var ErrEmailExists = errors.New("email already exists")
