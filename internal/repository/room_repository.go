// This file defines repository methods for CRUD and lookup operations on
// meeting rooms. A MeetingRoom is the schedulable resource of the system;
// reservations are scoped per room.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"strings"      // strings helps detect duplicate-key errors from the driver

	"github.com/iliyamo/meeting-room-reservation/internal/model"
)

// ErrRoomNotFound is returned when a meeting room cannot be found in the DB.
var ErrRoomNotFound = errors.New("meeting room not found")

// ErrRoomNameExists is returned when creating or renaming a room would
// violate the unique name constraint.
var ErrRoomNameExists = errors.New("meeting room name already exists")

// RoomRepo encapsulates all database queries related to meeting rooms.
// It depends on a sql.DB connection which should be configured elsewhere.
type RoomRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup. There is no initialization logic beyond assigning the field.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new meeting room. On success the room's ID field is
// populated with the auto-generated value and a follow-up SELECT fills
// the timestamp columns so callers receive a fully populated record.
// Duplicate names map to ErrRoomNameExists (MySQL error 1062).
func (r *RoomRepo) Create(ctx context.Context, room *model.MeetingRoom) error {
	const qInsert = "INSERT INTO meeting_rooms (name, description) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, room.Name, room.Description)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)

	const qSelect = "SELECT name, description, created_at, updated_at FROM meeting_rooms WHERE id = ?"
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, qSelect, room.ID).Scan(&room.Name, &desc, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return err
	}
	if desc.Valid {
		d := desc.String
		room.Description = &d
	}
	return nil
}

// GetByID fetches a meeting room by its ID. It returns ErrRoomNotFound
// if no row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.MeetingRoom, error) {
	const q = "SELECT id, name, description, created_at, updated_at FROM meeting_rooms WHERE id = ?"
	var (
		room model.MeetingRoom
		desc sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name, &desc, &room.CreatedAt, &room.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		room.Description = &d
	}
	return &room, nil
}

// ListAll returns all meeting rooms ordered by id. It is used for the
// public browsing endpoint so that anyone can see which rooms exist
// before authenticating.
func (r *RoomRepo) ListAll(ctx context.Context) ([]*model.MeetingRoom, error) {
	const q = `SELECT id, name, description, created_at, updated_at
	           FROM meeting_rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.MeetingRoom
	for rows.Next() {
		room := new(model.MeetingRoom)
		var desc sql.NullString
		if err := rows.Scan(&room.ID, &room.Name, &desc, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			room.Description = &d
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a room's name and description. It returns
// ErrRoomNotFound when no row is affected and ErrRoomNameExists when
// the new name collides with another room.
func (r *RoomRepo) Update(ctx context.Context, id uint64, name string, description *string) error {
	const q = `UPDATE meeting_rooms
	           SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, description, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomNameExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// DeleteByID removes a meeting room together with its past reservations.
// The delete is refused with ErrConflict while reservations that have
// not yet ended exist, so bookings cannot silently disappear from under
// their owners. The check and both deletes run in one transaction.
func (r *RoomRepo) DeleteByID(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify the room exists.
	var roomID uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM meeting_rooms WHERE id = ?`, id).Scan(&roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrRoomNotFound
		}
		return err
	}
	// Refuse while upcoming or running reservations exist.
	var upcoming int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE meeting_room_id = ? AND to_reserve > UTC_TIMESTAMP()`,
		id).Scan(&upcoming); err != nil {
		return err
	}
	if upcoming > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM reservations WHERE meeting_room_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM meeting_rooms WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
