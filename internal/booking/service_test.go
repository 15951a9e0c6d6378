package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/booking"
)

const (
	testRoomID  uint64 = 1
	otherRoomID uint64 = 2
	testUserID  uint64 = 42
	otherUserID uint64 = 43
)

func newTestService(roomIDs ...uint64) (*booking.Service, *memStore) {
	store := newMemStore(roomIDs...)
	svc := booking.NewService(store, func() time.Time { return referenceTime })
	return svc, store
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid reservation with owner attached", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		res, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if res.ID == 0 {
			t.Fatal("Create did not assign an id")
		}
		if res.UserID == nil || *res.UserID != testUserID {
			t.Fatalf("Create stored owner %v, want %d", res.UserID, testUserID)
		}
		if res.RoomID != testRoomID {
			t.Fatalf("Create stored room %d, want %d", res.RoomID, testRoomID)
		}
	})

	t.Run("rejects invalid intervals before any write", func(t *testing.T) {
		svc, store := newTestService(testRoomID)
		if _, err := svc.Create(ctx, testRoomID, testUserID, at(-1), at(30)); !errors.Is(err, booking.ErrStartNotInFuture) {
			t.Fatalf("past start: got %v, want ErrStartNotInFuture", err)
		}
		if _, err := svc.Create(ctx, testRoomID, testUserID, at(60), at(10)); !errors.Is(err, booking.ErrStartNotBeforeEnd) {
			t.Fatalf("inverted interval: got %v, want ErrStartNotBeforeEnd", err)
		}
		if n := len(store.all()); n != 0 {
			t.Fatalf("rejected creates left %d reservations behind", n)
		}
	})

	t.Run("reports conflicting ids and writes nothing", func(t *testing.T) {
		svc, store := newTestService(testRoomID)
		existing, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		_, err = svc.Create(ctx, testRoomID, otherUserID, at(30), at(90))
		var conflict *booking.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("overlapping create: got %v, want ConflictError", err)
		}
		if len(conflict.ConflictingIDs) != 1 || conflict.ConflictingIDs[0] != existing.ID {
			t.Fatalf("conflicting ids = %v, want [%d]", conflict.ConflictingIDs, existing.ID)
		}
		if n := len(store.all()); n != 1 {
			t.Fatalf("conflicting create left %d reservations, want 1", n)
		}
	})

	t.Run("same interval in another room is free", func(t *testing.T) {
		svc, _ := newTestService(testRoomID, otherRoomID)
		if _, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60)); err != nil {
			t.Fatalf("first room create failed: %v", err)
		}
		if _, err := svc.Create(ctx, otherRoomID, testUserID, at(10), at(60)); err != nil {
			t.Fatalf("second room create failed: %v", err)
		}
	})

	t.Run("touching intervals conflict", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		if _, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60)); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		_, err := svc.Create(ctx, testRoomID, testUserID, at(60), at(120))
		var conflict *booking.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("touching create: got %v, want ConflictError", err)
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		if _, err := svc.Create(ctx, 99, testUserID, at(10), at(60)); !errors.Is(err, booking.ErrRoomNotFound) {
			t.Fatalf("unknown room: got %v, want ErrRoomNotFound", err)
		}
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the interval and keeps room and owner", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		res, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		updated, err := svc.Update(ctx, res.ID, at(120), at(180))
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if !updated.FromReserve.Equal(at(120)) || !updated.ToReserve.Equal(at(180)) {
			t.Fatalf("Update stored [%v, %v]", updated.FromReserve, updated.ToReserve)
		}
		if updated.RoomID != res.RoomID {
			t.Fatalf("Update changed room: %d -> %d", res.RoomID, updated.RoomID)
		}
		if updated.UserID == nil || *updated.UserID != testUserID {
			t.Fatalf("Update changed owner: %v", updated.UserID)
		}
	})

	t.Run("never conflicts with its own prior state", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		res, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		// Re-saving the identical interval must succeed thanks to the
		// self-exclusion in the conflict query.
		if _, err := svc.Update(ctx, res.ID, at(10), at(60)); err != nil {
			t.Fatalf("identical-interval update failed: %v", err)
		}
		// Shifting into a range that still overlaps the old one too.
		if _, err := svc.Update(ctx, res.ID, at(30), at(90)); err != nil {
			t.Fatalf("overlapping-self update failed: %v", err)
		}
	})

	t.Run("conflicts with other reservations", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		blocker, err := svc.Create(ctx, testRoomID, testUserID, at(100), at(160))
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		res, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		_, err = svc.Update(ctx, res.ID, at(150), at(200))
		var conflict *booking.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("conflicting update: got %v, want ConflictError", err)
		}
		if len(conflict.ConflictingIDs) != 1 || conflict.ConflictingIDs[0] != blocker.ID {
			t.Fatalf("conflicting ids = %v, want [%d]", conflict.ConflictingIDs, blocker.ID)
		}
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		if _, err := svc.Update(ctx, 12345, at(10), at(60)); !errors.Is(err, booking.ErrReservationNotFound) {
			t.Fatalf("missing id: got %v, want ErrReservationNotFound", err)
		}
	})

	t.Run("invalid interval leaves the record untouched", func(t *testing.T) {
		svc, _ := newTestService(testRoomID)
		res, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		if _, err := svc.Update(ctx, res.ID, at(-5), at(30)); !errors.Is(err, booking.ErrStartNotInFuture) {
			t.Fatalf("past update: got %v, want ErrStartNotInFuture", err)
		}
		unchanged, err := svc.Get(ctx, res.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !unchanged.FromReserve.Equal(at(10)) || !unchanged.ToReserve.Equal(at(60)) {
			t.Fatalf("rejected update modified the record: [%v, %v]", unchanged.FromReserve, unchanged.ToReserve)
		}
	})
}

func TestServiceReads(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(testRoomID, otherRoomID)

	mine, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	if _, err := svc.Create(ctx, testRoomID, otherUserID, at(120), at(180)); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	if _, err := svc.Create(ctx, otherRoomID, testUserID, at(200), at(260)); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	t.Run("future reservations are scoped to the room", func(t *testing.T) {
		future, err := svc.FutureForRoom(ctx, testRoomID)
		if err != nil {
			t.Fatalf("FutureForRoom failed: %v", err)
		}
		if len(future) != 2 {
			t.Fatalf("FutureForRoom returned %d reservations, want 2", len(future))
		}
		for _, r := range future {
			if r.RoomID != testRoomID {
				t.Fatalf("FutureForRoom leaked reservation for room %d", r.RoomID)
			}
		}
	})

	t.Run("user listing spans rooms, newest start first", func(t *testing.T) {
		owned, err := svc.ForUser(ctx, testUserID)
		if err != nil {
			t.Fatalf("ForUser failed: %v", err)
		}
		if len(owned) != 2 {
			t.Fatalf("ForUser returned %d reservations, want 2", len(owned))
		}
		if !owned[0].FromReserve.Equal(at(200)) || !owned[1].FromReserve.Equal(at(10)) {
			t.Fatalf("ForUser order = [%v, %v], want newest start first",
				owned[0].FromReserve, owned[1].FromReserve)
		}
	})

	t.Run("delete removes the record", func(t *testing.T) {
		if err := svc.Delete(ctx, mine.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := svc.Get(ctx, mine.ID); !errors.Is(err, booking.ErrReservationNotFound) {
			t.Fatalf("Get after delete: got %v, want ErrReservationNotFound", err)
		}
		if err := svc.Delete(ctx, mine.ID); !errors.Is(err, booking.ErrReservationNotFound) {
			t.Fatalf("double delete: got %v, want ErrReservationNotFound", err)
		}
	})
}

// TestServiceConcurrentCreate races many identical creates for the
// same room. The per-room lock serializes the conflict check with the
// insert, so exactly one request may win; everyone else must get a
// ConflictError. Afterwards the store must hold no overlapping pair.
func TestServiceConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(testRoomID)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(user uint64) {
			defer wg.Done()
			<-start
			_, err := svc.Create(ctx, testRoomID, user, at(10), at(60))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			default:
				var conflict *booking.ConflictError
				if !errors.As(err, &conflict) {
					t.Errorf("unexpected error from racing create: %v", err)
					return
				}
				conflicts++
			}
		}(uint64(100 + i))
	}
	close(start)
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("%d racing creates succeeded, want exactly 1", succeeded)
	}
	if conflicts != attempts-1 {
		t.Fatalf("%d racing creates conflicted, want %d", conflicts, attempts-1)
	}

	all := store.all()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].RoomID == all[j].RoomID &&
				booking.Overlaps(all[i].FromReserve, all[i].ToReserve, all[j].FromReserve, all[j].ToReserve) {
				t.Fatalf("persisted overlapping reservations %d and %d", all[i].ID, all[j].ID)
			}
		}
	}
}

// TestServiceScenario walks the booking flow end to end: A books
// [now+10m, now+60m], B collides with it, C starts one minute after A
// ends and goes through.
func TestServiceScenario(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(testRoomID)

	a, err := svc.Create(ctx, testRoomID, testUserID, at(10), at(60))
	if err != nil {
		t.Fatalf("create A failed: %v", err)
	}

	_, err = svc.Create(ctx, testRoomID, otherUserID, at(30), at(90))
	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("create B: got %v, want ConflictError", err)
	}
	if len(conflict.ConflictingIDs) != 1 || conflict.ConflictingIDs[0] != a.ID {
		t.Fatalf("create B conflicts = %v, want [%d]", conflict.ConflictingIDs, a.ID)
	}

	c, err := svc.Create(ctx, testRoomID, otherUserID, at(61), at(90))
	if err != nil {
		t.Fatalf("create C failed: %v", err)
	}
	if c.ID == a.ID {
		t.Fatal("create C reused A's id")
	}

	future, err := svc.FutureForRoom(ctx, testRoomID)
	if err != nil {
		t.Fatalf("FutureForRoom failed: %v", err)
	}
	if len(future) != 2 {
		t.Fatalf("room holds %d future reservations, want 2", len(future))
	}
	if n := len(store.all()); n != 2 {
		t.Fatalf("store holds %d reservations, want 2", n)
	}
}
