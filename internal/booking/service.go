package booking

import (
	"context"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/model"
)

// Service orchestrates reservation writes: structural validation,
// conflict detection and the final store write, in that order, with
// the check and the write serialized per room through the store's
// room lock. Reads go straight to the store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService returns a Service bound to the given store. A nil nowFunc
// defaults to time.Now; tests inject a fixed clock instead.
func NewService(store Store, nowFunc func() time.Time) *Service {
	if store == nil {
		panic("nil store passed to booking.NewService")
	}
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &Service{store: store, now: nowFunc}
}

// Create books [from, to] in the given room on behalf of userID.
// The flow is Validate -> FindOverlapping -> Insert; a validation
// failure or a non-empty conflict set aborts before any write, so a
// failed create never leaves partial state behind. The conflict check
// and the insert run under the room lock.
func (s *Service) Create(ctx context.Context, roomID, userID uint64, from, to time.Time) (model.Reservation, error) {
	if err := ValidateInterval(from, to, s.now()); err != nil {
		return model.Reservation{}, err
	}
	var created model.Reservation
	err := s.store.WithRoomLock(ctx, roomID, func(locked Store) error {
		conflicts, err := locked.FindOverlapping(ctx, roomID, from, to, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{ConflictingIDs: reservationIDs(conflicts)}
		}
		owner := userID
		created, err = locked.Insert(ctx, model.Reservation{
			RoomID:      roomID,
			UserID:      &owner,
			FromReserve: from,
			ToReserve:   to,
		})
		return err
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return created, nil
}

// Update moves an existing reservation to a new interval. The record
// keeps its room and owner; only the times change. The reservation's
// own id is excluded from the conflict check so that re-saving the
// same (or an overlapping) interval never reports the record as its
// own conflict.
func (s *Service) Update(ctx context.Context, reservationID uint64, from, to time.Time) (model.Reservation, error) {
	existing, err := s.store.FindByID(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := ValidateInterval(from, to, s.now()); err != nil {
		return model.Reservation{}, err
	}
	var updated model.Reservation
	err = s.store.WithRoomLock(ctx, existing.RoomID, func(locked Store) error {
		conflicts, err := locked.FindOverlapping(ctx, existing.RoomID, from, to, reservationID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{ConflictingIDs: reservationIDs(conflicts)}
		}
		updated, err = locked.UpdateInterval(ctx, reservationID, from, to)
		return err
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return updated, nil
}

// FutureForRoom returns the room's reservations that have not yet
// ended. Reservations whose start is already in the past are included
// as long as they are still running; the future-start invariant is
// enforced at write time only.
func (s *Service) FutureForRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	return s.store.FindFuture(ctx, roomID, s.now())
}

// ForUser returns every reservation owned by the given user.
func (s *Service) ForUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return s.store.FindByUser(ctx, userID)
}

// Get loads a single reservation by id. It exists so the HTTP layer
// can perform ownership checks before an update or delete.
func (s *Service) Get(ctx context.Context, id uint64) (model.Reservation, error) {
	return s.store.FindByID(ctx, id)
}

// Delete removes a reservation. There is no domain logic beyond the
// store call; authorization is the caller's concern.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	return s.store.Delete(ctx, id)
}

func reservationIDs(res []model.Reservation) []uint64 {
	ids := make([]uint64, 0, len(res))
	for _, r := range res {
		ids = append(ids, r.ID)
	}
	return ids
}
