package booking

import "time"

// ValidateInterval checks the structural invariants of a candidate
// reservation interval independent of room contention. The reference
// now is passed in rather than read internally so the check is
// deterministic and testable.
//
// It returns ErrStartNotInFuture when from is at or before now, and
// ErrStartNotBeforeEnd when from is at or after to. The end time is
// never compared against now on its own: an interval that starts in
// the future can only be rejected for ending at or before its start.
func ValidateInterval(from, to, now time.Time) error {
	if !from.After(now) {
		return ErrStartNotInFuture
	}
	if !from.Before(to) {
		return ErrStartNotBeforeEnd
	}
	return nil
}
