package booking_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/booking"
	"github.com/iliyamo/meeting-room-reservation/internal/model"
)

// memStore is an in-memory booking.Store used by the service tests.
// WithRoomLock takes a per-room mutex, mirroring the row lock the
// MySQL implementation acquires with SELECT ... FOR UPDATE, so the
// concurrency behaviour of the service can be exercised without a
// database.
type memStore struct {
	mu        sync.Mutex
	roomLocks map[uint64]*sync.Mutex
	rooms     map[uint64]struct{}
	byID      map[uint64]model.Reservation
	nextID    uint64
}

func newMemStore(roomIDs ...uint64) *memStore {
	s := &memStore{
		roomLocks: make(map[uint64]*sync.Mutex),
		rooms:     make(map[uint64]struct{}),
		byID:      make(map[uint64]model.Reservation),
	}
	for _, id := range roomIDs {
		s.rooms[id] = struct{}{}
		s.roomLocks[id] = &sync.Mutex{}
	}
	return s
}

func (s *memStore) Insert(_ context.Context, res model.Reservation) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	res.ID = s.nextID
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	s.byID[res.ID] = res
	return res, nil
}

func (s *memStore) UpdateInterval(_ context.Context, id uint64, from, to time.Time) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.byID[id]
	if !ok {
		return model.Reservation{}, booking.ErrReservationNotFound
	}
	res.FromReserve = from
	res.ToReserve = to
	res.UpdatedAt = time.Now().UTC()
	s.byID[id] = res
	return res, nil
}

func (s *memStore) FindByID(_ context.Context, id uint64) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.byID[id]
	if !ok {
		return model.Reservation{}, booking.ErrReservationNotFound
	}
	return res, nil
}

func (s *memStore) FindOverlapping(_ context.Context, roomID uint64, from, to time.Time, excludeID uint64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, res := range s.byID {
		if res.RoomID != roomID {
			continue
		}
		if excludeID != 0 && res.ID == excludeID {
			continue
		}
		if booking.Overlaps(from, to, res.FromReserve, res.ToReserve) {
			out = append(out, res)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *memStore) FindFuture(_ context.Context, roomID uint64, now time.Time) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, res := range s.byID {
		if res.RoomID == roomID && res.ToReserve.After(now) {
			out = append(out, res)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *memStore) FindByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, res := range s.byID {
		if res.UserID != nil && *res.UserID == userID {
			out = append(out, res)
		}
	}
	// Newest start first, matching the SQL store's ORDER BY from_reserve DESC.
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromReserve.Equal(out[j].FromReserve) {
			return out[i].ID > out[j].ID
		}
		return out[i].FromReserve.After(out[j].FromReserve)
	})
	return out, nil
}

func (s *memStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return booking.ErrReservationNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memStore) WithRoomLock(_ context.Context, roomID uint64, fn func(locked booking.Store) error) error {
	s.mu.Lock()
	lock, ok := s.roomLocks[roomID]
	s.mu.Unlock()
	if !ok {
		return booking.ErrRoomNotFound
	}
	lock.Lock()
	defer lock.Unlock()
	return fn(s)
}

// all returns every stored reservation, ordered by start time.
func (s *memStore) all() []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.byID))
	for _, res := range s.byID {
		out = append(out, res)
	}
	sortByStart(out)
	return out
}

func sortByStart(res []model.Reservation) {
	sort.Slice(res, func(i, j int) bool {
		if res[i].FromReserve.Equal(res[j].FromReserve) {
			return res[i].ID < res[j].ID
		}
		return res[i].FromReserve.Before(res[j].FromReserve)
	})
}
