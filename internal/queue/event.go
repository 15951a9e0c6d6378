// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation is successfully
// created. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database. Timestamps are RFC3339 strings in UTC.
type ReservationBookedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"meeting_room_id"`
	UserID        uint64 `json:"user_id"`
	FromReserve   string `json:"from_reserve"`
	ToReserve     string `json:"to_reserve"`
	BookedAt      string `json:"booked_at"`
}
