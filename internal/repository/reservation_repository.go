package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/booking"
	"github.com/iliyamo/meeting-room-reservation/internal/model"
)

// dbtx is the subset of database/sql operations shared by *sql.DB and
// *sql.Tx. The reservation repository runs its queries against this
// interface so the same methods work both on the pool and inside the
// room-locked transaction handed out by WithRoomLock.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ReservationRepo is the MySQL implementation of booking.Store. All
// timestamp columns are DATETIME values stored in UTC; the DSN enables
// parseTime so they scan directly into time.Time.
type ReservationRepo struct {
	conn *sql.DB // connection pool; used to open the room-lock transaction
	q    dbtx    // query target: the pool, or the transaction inside WithRoomLock
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{conn: db, q: db}
}

// compile-time check that the repository satisfies the store contract
var _ booking.Store = (*ReservationRepo)(nil)

const reservationColumns = `id, meeting_room_id, user_id, from_reserve, to_reserve, created_at, updated_at`

// scanReservation reads one reservations row. user_id is nullable in
// the schema, so it goes through sql.NullInt64.
func scanReservation(row interface{ Scan(dest ...any) error }) (model.Reservation, error) {
	var (
		res    model.Reservation
		userID sql.NullInt64
	)
	err := row.Scan(&res.ID, &res.RoomID, &userID, &res.FromReserve, &res.ToReserve, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		res.UserID = &uid
	}
	return res, nil
}

func nullableUserID(res model.Reservation) any {
	if res.UserID == nil {
		return nil
	}
	return *res.UserID
}

// Insert persists a new reservation and returns the stored row with its
// assigned id and database-populated timestamps.
func (r *ReservationRepo) Insert(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	const qInsert = `INSERT INTO reservations (meeting_room_id, user_id, from_reserve, to_reserve) VALUES (?, ?, ?, ?)`
	result, err := r.q.ExecContext(ctx, qInsert,
		res.RoomID, nullableUserID(res), res.FromReserve.UTC(), res.ToReserve.UTC())
	if err != nil {
		return model.Reservation{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}
	// Query back the full row to populate timestamps and defaults.
	const qSelect = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.q.QueryRowContext(ctx, qSelect, uint64(id)))
}

// UpdateInterval rewrites the interval of an existing reservation. Room
// and owner are left untouched. Returns booking.ErrReservationNotFound
// when the id does not exist.
func (r *ReservationRepo) UpdateInterval(ctx context.Context, id uint64, from, to time.Time) (model.Reservation, error) {
	const qUpdate = `UPDATE reservations
	                 SET from_reserve = ?, to_reserve = ?, updated_at = CURRENT_TIMESTAMP
	                 WHERE id = ?`
	result, err := r.q.ExecContext(ctx, qUpdate, from.UTC(), to.UTC(), id)
	if err != nil {
		return model.Reservation{}, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		// RowsAffected is also zero when the new interval equals the
		// stored one, so double-check existence before reporting 404.
		if _, err := r.FindByID(ctx, id); err != nil {
			return model.Reservation{}, err
		}
	}
	const qSelect = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.q.QueryRowContext(ctx, qSelect, id))
}

// FindByID loads a single reservation by primary key.
func (r *ReservationRepo) FindByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, booking.ErrReservationNotFound
		}
		return model.Reservation{}, err
	}
	return res, nil
}

// FindOverlapping returns the reservations of a room whose closed
// intervals intersect [from, to]: a stored row conflicts when
// from <= to_reserve AND to >= from_reserve. Touching endpoints count
// as conflicts. When excludeID is non-zero that row is omitted, which
// keeps an update from colliding with its own prior state.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, roomID uint64, from, to time.Time, excludeID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + `
	      FROM reservations
	      WHERE meeting_room_id = ? AND ? <= to_reserve AND ? >= from_reserve`
	args := []any{roomID, from.UTC(), to.UTC()}
	if excludeID != 0 {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` ORDER BY from_reserve`
	return r.queryReservations(ctx, q, args...)
}

// FindFuture returns the room's reservations that end after now,
// ordered by start time. Reservations already running are included.
func (r *ReservationRepo) FindFuture(ctx context.Context, roomID uint64, now time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE meeting_room_id = ? AND to_reserve > ?
	           ORDER BY from_reserve`
	return r.queryReservations(ctx, q, roomID, now.UTC())
}

// FindByUser returns all reservations owned by the given user, newest
// start first.
func (r *ReservationRepo) FindByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE user_id = ?
	           ORDER BY from_reserve DESC`
	return r.queryReservations(ctx, q, userID)
}

// Delete removes a reservation by id.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return booking.ErrReservationNotFound
	}
	return nil
}

// WithRoomLock opens a transaction, takes an exclusive row lock on the
// meeting room with SELECT ... FOR UPDATE, and runs fn against a
// repository bound to that transaction. Any concurrent create/update
// for the same room blocks on the row lock until the transaction
// commits or rolls back, which closes the check-then-act window
// between the overlap query and the write. fn returning an error rolls
// everything back, so a conflict or validation failure never leaves a
// partial write behind.
func (r *ReservationRepo) WithRoomLock(ctx context.Context, roomID uint64, fn func(locked booking.Store) error) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var id uint64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM meeting_rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrRoomNotFound
		}
		return err
	}
	if err := fn(&ReservationRepo{conn: r.conn, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
