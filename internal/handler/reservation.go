package handler

import (
	"context"  // detached context for best-effort event publishing
	"errors"   // errors.Is / errors.As comparisons against booking errors
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // working with timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/meeting-room-reservation/internal/booking" // scheduling core
	"github.com/iliyamo/meeting-room-reservation/internal/model"   // stored reservation records
	"github.com/iliyamo/meeting-room-reservation/internal/queue"   // event payloads
	"github.com/iliyamo/meeting-room-reservation/internal/service" // queue publisher
)

// ReservationHandler exposes the booking service over HTTP. All methods
// assume that JWT authentication and role validation have already been
// performed by middleware; they may still return 401 when the user ID
// cannot be extracted from the context. Conflict detection, interval
// validation and the per-room write serialization all live in the
// booking package; the handler only parses requests, enforces ownership
// and maps domain errors onto status codes.
type ReservationHandler struct {
	Svc *booking.Service
}

// NewReservationHandler constructs a ReservationHandler around the
// booking service. The service must be non-nil.
func NewReservationHandler(svc *booking.Service) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// reservationReq carries the client-supplied interval. Timestamps are
// exchanged as RFC3339 strings and decoded into time.Time by the JSON
// binder; creates additionally name the room.
type reservationReq struct {
	RoomID      uint64    `json:"meeting_room_id"`
	FromReserve time.Time `json:"from_reserve"`
	ToReserve   time.Time `json:"to_reserve"`
}

// writeBookingError maps booking-core errors onto HTTP responses:
// validation failures are 400, conflicts are 409 and carry the ids of
// the reservations in the way, missing rooms/reservations are 404.
// Anything else is an opaque storage failure.
func writeBookingError(c echo.Context, err error) error {
	var conflict *booking.ConflictError
	switch {
	case errors.Is(err, booking.ErrStartNotInFuture), errors.Is(err, booking.ErrStartNotBeforeEnd):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "time slot already reserved",
			"conflicts": conflict.ConflictingIDs,
		})
	case errors.Is(err, booking.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "meeting room not found"})
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// bookedEvent builds the queue payload for a freshly stored
// reservation. Every timestamp, including BookedAt, comes from the
// persisted record so the event never disagrees with the database.
func bookedEvent(res model.Reservation) queue.ReservationBookedEvent {
	ev := queue.ReservationBookedEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		FromReserve:   res.FromReserve.UTC().Format(time.RFC3339),
		ToReserve:     res.ToReserve.UTC().Format(time.RFC3339),
		BookedAt:      res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if res.UserID != nil {
		ev.UserID = *res.UserID
	}
	return ev
}

// Create handles POST /v1/reservations. It books the requested
// interval for the authenticated user and returns the stored record
// with its assigned id. A 409 response lists the ids of conflicting
// reservations so the client can pick another slot.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "meeting_room_id is required"})
	}
	if req.FromReserve.IsZero() || req.ToReserve.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from_reserve and to_reserve are required"})
	}

	res, err := h.Svc.Create(c.Request().Context(), req.RoomID, userID, req.FromReserve, req.ToReserve)
	if err != nil {
		return writeBookingError(c, err)
	}

	// Best-effort event for downstream consumers; a broker outage must
	// not fail the booking that already committed.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = service.PublishReservationBooked(ctx, bookedEvent(res))
	}()

	return c.JSON(http.StatusCreated, res)
}

// Update handles PATCH /v1/reservations/:id. Only the interval can
// change; room and owner are immutable. The caller must own the
// reservation or hold the ADMIN role.
func (h *ReservationHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FromReserve.IsZero() || req.ToReserve.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from_reserve and to_reserve are required"})
	}

	ctx := c.Request().Context()
	existing, err := h.Svc.Get(ctx, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	if !isAdmin(c) && (existing.UserID == nil || *existing.UserID != userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	res, err := h.Svc.Update(ctx, id, req.FromReserve, req.ToReserve)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /v1/reservations/:id. Deletion is a plain
// store removal with an ownership check; there is no domain logic
// beyond authorization.
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	existing, err := h.Svc.Get(ctx, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	if !isAdmin(c) && (existing.UserID == nil || *existing.UserID != userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine handles GET /v1/my-reservations. It returns every
// reservation owned by the current user across all rooms. When none
// exist the response is an empty array.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	res, err := h.Svc.ForUser(c.Request().Context(), userID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// RoomReservations handles GET /v1/rooms/:id/reservations. It returns
// the room's reservations that have not yet ended, ordered by start
// time, so callers can see when the room is next free.
func (h *ReservationHandler) RoomReservations(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	res, err := h.Svc.FutureForRoom(c.Request().Context(), roomID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
