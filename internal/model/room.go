package model

import "time"

// MeetingRoom represents a bookable room as stored in the
// `meeting_rooms` table. Room names are unique across the
// deployment.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique human-readable room name.
//  Description – optional free-form description (nullable).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type MeetingRoom struct {
	ID          uint64    `json:"id"`                    // meeting_rooms.id
	Name        string    `json:"name"`                  // meeting_rooms.name
	Description *string   `json:"description,omitempty"` // meeting_rooms.description (nullable)
	CreatedAt   time.Time `json:"created_at"`            // meeting_rooms.created_at
	UpdatedAt   time.Time `json:"updated_at"`            // meeting_rooms.updated_at
}
