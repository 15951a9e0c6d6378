package handler

import (
	"testing"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/model"
)

func TestBookedEventMirrorsStoredRecord(t *testing.T) {
	owner := uint64(42)
	created := time.Date(2025, time.March, 14, 9, 0, 3, 0, time.UTC)
	res := model.Reservation{
		ID:          7,
		RoomID:      1,
		UserID:      &owner,
		FromReserve: time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC),
		ToReserve:   time.Date(2025, time.March, 14, 11, 0, 0, 0, time.UTC),
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	ev := bookedEvent(res)

	if ev.ReservationID != res.ID || ev.RoomID != res.RoomID || ev.UserID != owner {
		t.Fatalf("event identity = (%d, %d, %d), want (%d, %d, %d)",
			ev.ReservationID, ev.RoomID, ev.UserID, res.ID, res.RoomID, owner)
	}
	if ev.FromReserve != "2025-03-14T10:00:00Z" || ev.ToReserve != "2025-03-14T11:00:00Z" {
		t.Fatalf("event interval = [%s, %s]", ev.FromReserve, ev.ToReserve)
	}
	// BookedAt reflects when the row was written, not when the event
	// goroutine happened to run.
	if ev.BookedAt != created.Format(time.RFC3339) {
		t.Fatalf("BookedAt = %s, want %s", ev.BookedAt, created.Format(time.RFC3339))
	}

	// A record without an owner (nullable column) produces a zero user id.
	res.UserID = nil
	if ev := bookedEvent(res); ev.UserID != 0 {
		t.Fatalf("ownerless event UserID = %d, want 0", ev.UserID)
	}
}
