// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios, for
// example an operation that cannot proceed because of existing
// dependent records (deleting a room with upcoming reservations).
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a meeting room that still has upcoming reservations.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
