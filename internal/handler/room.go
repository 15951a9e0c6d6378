package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"strings"  // input normalization

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/meeting-room-reservation/internal/model"
	"github.com/iliyamo/meeting-room-reservation/internal/repository"
)

// RoomHandler exposes CRUD operations on meeting rooms. Listing and
// fetching single rooms is public so anyone can browse what exists;
// create, update and delete are registered behind the ADMIN role.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler and panics on a nil repository.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /v1/rooms. Room names are unique; a duplicate
// yields 409.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	room := &model.MeetingRoom{Name: req.Name, Description: req.Description}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		if errors.Is(err, repository.ErrRoomNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, room)
}

// List handles GET /v1/rooms. Public; returns all rooms ordered by id.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rooms == nil {
		rooms = []*model.MeetingRoom{}
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /v1/rooms/:id. Public.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "meeting room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// Update handles PATCH /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx := c.Request().Context()
	if err := h.Rooms.Update(ctx, id, req.Name, req.Description); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "meeting room not found"})
		case errors.Is(err, repository.ErrRoomNameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id. A room with reservations that
// have not yet ended cannot be removed; the client gets 409 and has to
// clear the bookings first.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.DeleteByID(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "meeting room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has upcoming reservations"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
