// Package reconcile compares and transfers date/time/timezone facts between
// the row-store and a media file's embedded metadata.
package reconcile

import (
	"time"

	"github.com/starford/timewarp/internal/exiftool"
	"github.com/starford/timewarp/internal/store"
	"github.com/starford/timewarp/internal/timeutil"
)

// Merge applies the pull precedence policy for partially-missing EXIF data
// and returns the target local reading and offset:
//
//	date+time+offset  -> take all three
//	date+time only    -> take date and time, keep offset
//	offset only       -> take offset, keep the local reading
//	date without time -> take date with time 00:00:00 (plus offset if present)
//	nothing usable    -> no change
func Merge(f exiftool.Fact, local time.Time, offset int) (time.Time, int) {
	if f.Empty() {
		return local, offset
	}
	if f.DateTime == nil {
		// Offset only. The local reading stays put; only the offset
		// (and with it the derived instant) moves.
		return local, *f.Offset
	}
	newLocal := *f.DateTime
	if !f.HasTime {
		newLocal = timeutil.SetTime(timeutil.SetDate(local, *f.DateTime), timeutil.TimeOfDay{})
	}
	newOffset := offset
	if f.Offset != nil {
		newOffset = *f.Offset
	}
	return newLocal, newOffset
}

// Diff is the per-asset result of comparing row-store facts against a
// file's embedded metadata. Empty EXIF columns mean the field was absent
// (or the original file was not on disk).
type Diff struct {
	UUID       string
	Filename   string
	PhotosDate string
	PhotosTime string
	PhotosTZ   string
	ExifDate   string
	ExifTime   string
	ExifTZ     string
	DateDiff   bool
	TimeDiff   bool
	TZDiff     bool
}

// Different reports whether any of the three fields differ. Comparison is
// exact; there is no tolerance window.
func (d Diff) Different() bool {
	return d.DateDiff || d.TimeDiff || d.TZDiff
}

// Compare builds the field-by-field diff for one asset.
func Compare(rec store.AssetRecord, f exiftool.Fact) Diff {
	d := Diff{
		UUID:       rec.UUID,
		Filename:   rec.Filename,
		PhotosDate: rec.Local.Format("2006-01-02"),
		PhotosTime: rec.Local.Format("15:04:05"),
		PhotosTZ:   timeutil.FormatOffset(rec.TZOffset),
	}
	if f.DateTime != nil {
		d.ExifDate = f.DateTime.Format("2006-01-02")
		if f.HasTime {
			d.ExifTime = f.DateTime.Format("15:04:05")
		}
	}
	if f.Offset != nil {
		d.ExifTZ = timeutil.FormatOffset(*f.Offset)
	}
	d.DateDiff = d.PhotosDate != d.ExifDate
	d.TimeDiff = d.PhotosTime != d.ExifTime
	d.TZDiff = d.PhotosTZ != d.ExifTZ
	return d
}
