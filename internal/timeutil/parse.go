package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/starford/timewarp/internal/apperr"
)

// Offsets beyond this are rejected; no real zone exceeds GMT±18.
const maxOffsetSeconds = 18 * 3600

var (
	dateDeltaRe = regexp.MustCompile(`^([+-]?\d+)(?:\s*(days?|weeks?))?$`)
	timeDeltaRe = regexp.MustCompile(`^([+-]?\d+)(?:\s*(hours?|hr|minutes?|min|seconds?|sec))?$`)
	clockRe     = regexp.MustCompile(`^([+-])(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	utcOffsetRe = regexp.MustCompile(`^([+-])(\d{1,2}):?(\d{2})$`)
)

// ParseDate parses an absolute date in YYYY-MM-DD form. A full ISO 8601
// datetime is accepted too; only its date component is used.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("timeutil: invalid date %q (want YYYY-MM-DD): %w", s, apperr.ErrValidation)
}

// ParseTimeOfDay parses HH:MM, HH:MM:SS, or HH:MM:SS.fff. Missing seconds
// default to :00, missing fractional seconds to .000.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05.000", "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Min: t.Minute(), Sec: t.Second(), Nsec: t.Nanosecond()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("timeutil: invalid time %q (want HH:MM:SS, HH:MM:SS.fff, or HH:MM): %w", s, apperr.ErrValidation)
}

// ParseDateDelta parses a signed day count: "±D", "±D days", or "±W weeks".
func ParseDateDelta(s string) (int, error) {
	m := dateDeltaRe.FindStringSubmatch(strings.TrimSpace(strings.ToLower(s)))
	if m == nil {
		return 0, fmt.Errorf("timeutil: invalid date delta %q (want '±D days', '±W weeks', or '±D'): %w", s, apperr.ErrValidation)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid date delta %q: %w", s, apperr.ErrValidation)
	}
	if strings.HasPrefix(m[2], "week") {
		n *= 7
	}
	return n, nil
}

// ParseTimeDelta parses a signed duration: "±HH:MM:SS", "±HH:MM",
// "±N hours" (or hr), "±N minutes" (or min), "±N seconds" (or sec), or a
// bare signed second count.
func ParseTimeDelta(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))

	if m := clockRe.FindStringSubmatch(trimmed); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		seconds := 0
		if m[4] != "" {
			seconds, _ = strconv.Atoi(m[4])
		}
		d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
		if m[1] == "-" {
			d = -d
		}
		return d, nil
	}

	if m := timeDeltaRe.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid time delta %q: %w", s, apperr.ErrValidation)
		}
		unit := time.Second
		switch {
		case strings.HasPrefix(m[2], "hour"), m[2] == "hr":
			unit = time.Hour
		case strings.HasPrefix(m[2], "min"):
			unit = time.Minute
		}
		return time.Duration(n) * unit, nil
	}

	return 0, fmt.Errorf("timeutil: invalid time delta %q (want '±HH:MM:SS', '±N hours', '±N minutes', '±N seconds', or '±S'): %w", s, apperr.ErrValidation)
}

// ParseUTCOffset parses a UTC offset in ±HH:MM, ±H:MM, or ±HHMM form into
// seconds east of UTC.
func ParseUTCOffset(s string) (int, error) {
	m := utcOffsetRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("timeutil: invalid UTC offset %q (want '±HH:MM', '±H:MM', or '±HHMM'): %w", s, apperr.ErrValidation)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if minutes > 59 {
		return 0, fmt.Errorf("timeutil: invalid UTC offset %q: minutes out of range: %w", s, apperr.ErrValidation)
	}
	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	if offset < -maxOffsetSeconds || offset > maxOffsetSeconds {
		return 0, fmt.Errorf("timeutil: UTC offset %q out of range: %w", s, apperr.ErrValidation)
	}
	return offset, nil
}
