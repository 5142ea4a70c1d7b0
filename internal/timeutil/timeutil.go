// Package timeutil implements the two-field date/time model used by the
// Photos library: a naive local-clock reading paired with a UTC offset in
// seconds. The absolute instant is always derived as local minus offset and
// is never stored directly.
package timeutil

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with no date attached.
type TimeOfDay struct {
	Hour int
	Min  int
	Sec  int
	Nsec int
}

// LocalFromInstant derives the naive local-clock reading for an absolute
// instant and a UTC offset. The result carries the UTC location but has no
// zone semantics; it is a plain calendar reading.
func LocalFromInstant(instant time.Time, offsetSeconds int) time.Time {
	return instant.UTC().Add(time.Duration(offsetSeconds) * time.Second)
}

// InstantFromLocal is the inverse of LocalFromInstant.
func InstantFromLocal(local time.Time, offsetSeconds int) time.Time {
	return local.Add(-time.Duration(offsetSeconds) * time.Second)
}

// SetDate replaces the calendar-date component of local, keeping the
// time-of-day unchanged.
func SetDate(local time.Time, date time.Time) time.Time {
	h, m, s := local.Clock()
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, local.Nanosecond(), time.UTC)
}

// AddDays shifts the date component by a signed number of days using plain
// calendar arithmetic (month/year rollover, leap years).
func AddDays(local time.Time, days int) time.Time {
	return local.AddDate(0, 0, days)
}

// SetTime replaces the time-of-day component of local, keeping the date
// unchanged.
func SetTime(local time.Time, tod TimeOfDay) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), tod.Hour, tod.Min, tod.Sec, tod.Nsec, time.UTC)
}

// AddDuration shifts local by a signed duration; the date component may
// roll forward or backward.
func AddDuration(local time.Time, d time.Duration) time.Time {
	return local.Add(d)
}

// SetOffset applies a timezone change and returns the new local reading
// and offset.
//
// Default policy (matchTime false) preserves the absolute instant: the
// local reading shifts by newOffset-oldOffset, mirroring the Photos
// "Get Info" timezone edit. With matchTime true the local reading is kept
// exactly and only the offset changes, letting the absolute instant shift.
func SetOffset(local time.Time, oldOffset, newOffset int, matchTime bool) (time.Time, int) {
	if matchTime {
		return local, newOffset
	}
	return local.Add(time.Duration(newOffset-oldOffset) * time.Second), newOffset
}

// FormatOffset renders an offset in seconds as ±HH:MM.
func FormatOffset(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offsetSeconds/3600, offsetSeconds%3600/60)
}

// GMTName renders an offset as the zone name Photos stores alongside it,
// e.g. "GMT+0200"; a zero offset is plain "GMT".
func GMTName(offsetSeconds int) string {
	if offsetSeconds == 0 {
		return "GMT"
	}
	sign := "+"
	s := offsetSeconds
	if s < 0 {
		sign = "-"
		s = -s
	}
	return fmt.Sprintf("GMT%s%02d%02d", sign, s/3600, s%3600/60)
}
