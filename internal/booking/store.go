package booking

import (
	"context"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/model"
)

// Store is the narrow persistence contract the booking core relies on.
// The production implementation lives in internal/repository and is
// backed by MySQL; tests use an in-memory implementation.
//
// FindOverlapping must apply the same closed-interval predicate as
// Overlaps: a stored reservation conflicts with [from, to] when
// from <= to_reserve AND to >= from_reserve. When excludeID is
// non-zero the reservation with that id is omitted from the result,
// which lets an update avoid conflicting with its own prior state.
type Store interface {
	// Insert persists a new reservation and returns the stored record
	// with its assigned id and timestamps.
	Insert(ctx context.Context, res model.Reservation) (model.Reservation, error)

	// UpdateInterval rewrites the interval of an existing reservation.
	// Room and owner are never touched. It returns
	// ErrReservationNotFound when the id does not exist.
	UpdateInterval(ctx context.Context, id uint64, from, to time.Time) (model.Reservation, error)

	// FindByID loads a single reservation, or ErrReservationNotFound.
	FindByID(ctx context.Context, id uint64) (model.Reservation, error)

	// FindOverlapping returns the reservations of the given room whose
	// intervals intersect [from, to], ordered by start time. A zero
	// excludeID means no exclusion.
	FindOverlapping(ctx context.Context, roomID uint64, from, to time.Time, excludeID uint64) ([]model.Reservation, error)

	// FindFuture returns the room's reservations that end after now.
	FindFuture(ctx context.Context, roomID uint64, now time.Time) ([]model.Reservation, error)

	// FindByUser returns all reservations owned by the given user.
	FindByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)

	// Delete removes a reservation, or returns ErrReservationNotFound.
	Delete(ctx context.Context, id uint64) error

	// WithRoomLock runs fn while holding an exclusive per-room lock and
	// hands it a Store bound to that critical section. Every write the
	// service performs goes through this so that the conflict check and
	// the subsequent insert/update are serialized per room; without it
	// two concurrent requests could both observe an empty conflict set
	// and both commit. It returns ErrRoomNotFound when the room does
	// not exist.
	WithRoomLock(ctx context.Context, roomID uint64, fn func(locked Store) error) error
}
