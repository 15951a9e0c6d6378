package model

import "time"

// Reservation records a booking of a meeting room for a time interval.
// The interval is closed on both ends: two reservations for the same
// room whose ranges merely touch are considered overlapping.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – meeting room being booked; immutable after creation.
//  UserID      – user who owns the reservation (nullable at the schema
//                level; the service sets it to the authenticated caller).
//  FromReserve – interval start, stored in UTC.
//  ToReserve   – interval end, stored in UTC.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          uint64    `json:"id"`                // reservations.id
	RoomID      uint64    `json:"meeting_room_id"`   // reservations.meeting_room_id
	UserID      *uint64   `json:"user_id,omitempty"` // reservations.user_id (nullable)
	FromReserve time.Time `json:"from_reserve"`      // reservations.from_reserve
	ToReserve   time.Time `json:"to_reserve"`        // reservations.to_reserve
	CreatedAt   time.Time `json:"created_at"`        // reservations.created_at
	UpdatedAt   time.Time `json:"updated_at"`        // reservations.updated_at
}
