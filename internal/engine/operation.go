package engine

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/timewarp/internal/apperr"
	"github.com/starford/timewarp/internal/timeutil"
)

// Operation describes one requested batch edit. Nil pointer fields are
// "not requested". Values are immutable once built; the same Operation is
// applied to every asset in the batch.
type Operation struct {
	Date      *time.Time
	DateDelta *int // days
	Time      *timeutil.TimeOfDay
	TimeDelta *time.Duration
	Timezone  *int // seconds east of UTC
	MatchTime bool
	PullExif  bool
	PushExif  bool
}

// Empty reports whether nothing at all was requested.
func (op Operation) Empty() bool {
	return op.Date == nil && op.DateDelta == nil && op.Time == nil &&
		op.TimeDelta == nil && op.Timezone == nil && !op.PullExif && !op.PushExif
}

// Validate enforces the operation's structural rules: at least one edit,
// absolute and delta forms mutually exclusive, match-time only together
// with a timezone.
func (op Operation) Validate() error {
	if op.Empty() {
		return fmt.Errorf("engine: no operation requested: %w", apperr.ErrValidation)
	}
	err := validation.ValidateStruct(&op,
		validation.Field(&op.DateDelta, validation.By(func(any) error {
			if op.Date != nil && op.DateDelta != nil {
				return fmt.Errorf("date and date-delta are mutually exclusive")
			}
			return nil
		})),
		validation.Field(&op.TimeDelta, validation.By(func(any) error {
			if op.Time != nil && op.TimeDelta != nil {
				return fmt.Errorf("time and time-delta are mutually exclusive")
			}
			return nil
		})),
		validation.Field(&op.MatchTime, validation.By(func(any) error {
			if op.MatchTime && op.Timezone == nil {
				return fmt.Errorf("match-time requires a timezone")
			}
			return nil
		})),
	)
	if err != nil {
		return fmt.Errorf("engine: %v: %w", err, apperr.ErrValidation)
	}
	return nil
}

// NeedsExiftool reports whether applying this operation requires the
// extraction tool to be present at startup.
func (op Operation) NeedsExiftool() bool {
	return op.PullExif || op.PushExif
}
