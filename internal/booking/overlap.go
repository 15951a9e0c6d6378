package booking

import "time"

// Overlaps reports whether the closed intervals [aFrom, aTo] and
// [bFrom, bTo] intersect. Two intervals do not overlap only when one
// ends strictly before the other begins; containment, partial overlap
// on either side and exact match all count as conflicts, and so do
// touching endpoints (a booking ending at 11:00 blocks one starting at
// 11:00). Back-to-back bookings being rejected is a deliberate policy,
// not an off-by-one.
//
// The single two-sided inequality below covers every relative position
// of the two intervals; no case analysis on "starts inside" / "ends
// inside" / "spans" is needed, and the predicate is symmetric in its
// arguments.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !aTo.Before(bFrom)
}
