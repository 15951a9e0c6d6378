package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/meeting-room-reservation/internal/booking"
)

// referenceTime is the fixed "now" used across the booking tests so
// they stay deterministic regardless of the wall clock.
var referenceTime = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

func TestValidateInterval(t *testing.T) {
	now := referenceTime
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want error
	}{
		{
			name: "valid future interval",
			from: now.Add(10 * time.Minute),
			to:   now.Add(60 * time.Minute),
			want: nil,
		},
		{
			name: "start one minute in the past",
			from: now.Add(-1 * time.Minute),
			to:   now.Add(30 * time.Minute),
			want: booking.ErrStartNotInFuture,
		},
		{
			name: "start exactly at now",
			from: now,
			to:   now.Add(30 * time.Minute),
			want: booking.ErrStartNotInFuture,
		},
		{
			name: "inverted interval",
			from: now.Add(60 * time.Minute),
			to:   now.Add(10 * time.Minute),
			want: booking.ErrStartNotBeforeEnd,
		},
		{
			name: "zero-length interval",
			from: now.Add(10 * time.Minute),
			to:   now.Add(10 * time.Minute),
			want: booking.ErrStartNotBeforeEnd,
		},
		{
			// The start check runs first, so an interval that is both
			// in the past and inverted reports the past start.
			name: "past and inverted reports past start first",
			from: now.Add(-10 * time.Minute),
			to:   now.Add(-60 * time.Minute),
			want: booking.ErrStartNotInFuture,
		},
		{
			// The end time is never checked against now on its own; a
			// future start pointing at an already elapsed end only
			// trips on the ordering check.
			name: "future start with end before start",
			from: now.Add(30 * time.Minute),
			to:   now.Add(-5 * time.Minute),
			want: booking.ErrStartNotBeforeEnd,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := booking.ValidateInterval(tc.from, tc.to, now)
			if !errors.Is(got, tc.want) {
				t.Fatalf("ValidateInterval(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
