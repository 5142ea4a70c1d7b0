package exiftool

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fact is the (date, time, offset) triple read from a file's embedded
// metadata. Any of the three may be absent: a nil DateTime means no usable
// date at all, HasTime false with a non-nil DateTime means a date-only
// value, a nil Offset means no zone information was recorded.
type Fact struct {
	DateTime *time.Time // naive local reading, date at minimum
	HasTime  bool
	Offset   *int // seconds east of UTC
}

// Empty reports whether the fact carries nothing usable.
func (f Fact) Empty() bool {
	return f.DateTime == nil && f.Offset == nil
}

// Tags consulted for the capture date-time, in precedence order. The
// QuickTime keys cover videos, where CreationDate may embed the offset.
var dateTimeTags = []string{
	"EXIF:DateTimeOriginal",
	"EXIF:CreateDate",
	"QuickTime:CreationDate",
	"QuickTime:CreateDate",
}

var offsetTags = []string{
	"EXIF:OffsetTimeOriginal",
	"EXIF:OffsetTime",
}

var (
	exifDateTimeRe = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})(?:[ T](\d{2}):(\d{2}):(\d{2})(?:\.\d+)?)?(?:([+-]\d{2}):?(\d{2})|Z)?$`)
	exifOffsetRe   = regexp.MustCompile(`^([+-]\d{2}):?(\d{2})$`)
)

// factFromReport builds a Fact from one exiftool JSON report object.
func factFromReport(report map[string]any) Fact {
	var f Fact
	for _, tag := range dateTimeTags {
		s, ok := report[tag].(string)
		if !ok {
			continue
		}
		dt, hasTime, offset, ok := parseDateTime(s)
		if !ok {
			continue
		}
		f.DateTime = &dt
		f.HasTime = hasTime
		if offset != nil {
			f.Offset = offset
		}
		break
	}
	for _, tag := range offsetTags {
		if f.Offset != nil {
			break
		}
		s, ok := report[tag].(string)
		if !ok {
			continue
		}
		if off, ok := parseOffset(s); ok {
			f.Offset = &off
		}
	}
	return f
}

// parseDateTime parses exiftool's "YYYY:MM:DD HH:MM:SS" form, tolerating a
// date-only value, fractional seconds, and a trailing UTC offset.
func parseDateTime(s string) (dt time.Time, hasTime bool, offset *int, ok bool) {
	m := exifDateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false, nil, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false, nil, false
	}
	var hour, minute, sec int
	if m[4] != "" {
		hasTime = true
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		sec, _ = strconv.Atoi(m[6])
	}
	dt = time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	if m[7] != "" {
		off := signedOffset(m[7], m[8])
		offset = &off
	} else if strings.HasSuffix(s, "Z") {
		utc := 0
		offset = &utc
	}
	return dt, hasTime, offset, true
}

func parseOffset(s string) (int, bool) {
	m := exifOffsetRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return signedOffset(m[1], m[2]), true
}

// signedOffset combines a signed hours field ("±HH") with minutes. The
// sign comes from the string form so "-00:30" keeps its direction.
func signedOffset(hoursField, minutesField string) int {
	hours, _ := strconv.Atoi(hoursField[1:])
	minutes, _ := strconv.Atoi(minutesField)
	off := hours*3600 + minutes*60
	if hoursField[0] == '-' {
		off = -off
	}
	return off
}
