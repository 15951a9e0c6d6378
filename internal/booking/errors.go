// Package booking implements the scheduling core: interval validation,
// overlap detection and the reservation service that ties them to a
// storage backend. It has no knowledge of HTTP or of a concrete
// database; persistence is reached through the Store interface so the
// package stays testable against an in-memory implementation.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStartNotInFuture is returned when a reservation's start time is
// not strictly later than the reference "now" supplied to validation.
var ErrStartNotInFuture = errors.New("reservation start must be in the future")

// ErrStartNotBeforeEnd is returned when a reservation's start time is
// not strictly earlier than its end time. Zero-length intervals are
// rejected.
var ErrStartNotBeforeEnd = errors.New("reservation start must be before its end")

// ErrReservationNotFound is returned when the referenced reservation id
// does not exist. Handlers should translate this into an HTTP 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRoomNotFound is returned when the referenced meeting room does not
// exist. Handlers should translate this into an HTTP 404.
var ErrRoomNotFound = errors.New("meeting room not found")

// ConflictError reports that a candidate interval overlaps one or more
// persisted reservations for the same room. It carries the ids of the
// conflicting records so clients can inspect what is in the way.
// Handlers should translate it into an HTTP 409.
type ConflictError struct {
	ConflictingIDs []uint64
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	ids := make([]string, 0, len(e.ConflictingIDs))
	for _, id := range e.ConflictingIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	return "time slot already reserved (conflicts: " + strings.Join(ids, ", ") + ")"
}
