package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/timewarp/internal/apperr"
	"github.com/starford/timewarp/internal/timeutil"
)

func TestOperationValidate(t *testing.T) {
	date := time.Date(2021, time.September, 10, 0, 0, 0, 0, time.UTC)
	delta := 1
	tod := timeutil.TimeOfDay{Hour: 12}
	tdelta := time.Hour
	tz := 7200

	tests := []struct {
		name    string
		op      Operation
		wantErr bool
	}{
		{"empty", Operation{}, true},
		{"date only", Operation{Date: &date}, false},
		{"date and delta", Operation{Date: &date, DateDelta: &delta}, true},
		{"time and delta", Operation{Time: &tod, TimeDelta: &tdelta}, true},
		{"match-time without timezone", Operation{Date: &date, MatchTime: true}, true},
		{"match-time with timezone", Operation{Timezone: &tz, MatchTime: true}, false},
		{"pull only", Operation{PullExif: true}, false},
		{"everything compatible", Operation{DateDelta: &delta, TimeDelta: &tdelta, Timezone: &tz, PushExif: true}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op.Validate()
			if tc.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestOperationNeedsExiftool(t *testing.T) {
	if (Operation{PullExif: true}).NeedsExiftool() == false {
		t.Error("pull needs exiftool")
	}
	if (Operation{PushExif: true}).NeedsExiftool() == false {
		t.Error("push needs exiftool")
	}
	delta := 1
	if (Operation{DateDelta: &delta}).NeedsExiftool() {
		t.Error("date delta does not need exiftool")
	}
}
