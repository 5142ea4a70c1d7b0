package timeutil

import (
	"testing"
	"time"
)

func naive(y int, mo time.Month, d, h, mi, s int) time.Time {
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
}

func TestSetOffset_DefaultPreservesInstant(t *testing.T) {
	local := naive(2021, time.September, 10, 12, 0, 0)
	newLocal, newOffset := SetOffset(local, 3600, 7200, false)

	if want := naive(2021, time.September, 10, 13, 0, 0); !newLocal.Equal(want) {
		t.Errorf("local = %v, want %v", newLocal, want)
	}
	if newOffset != 7200 {
		t.Errorf("offset = %d, want 7200", newOffset)
	}
	if !InstantFromLocal(newLocal, newOffset).Equal(InstantFromLocal(local, 3600)) {
		t.Error("absolute instant not preserved")
	}
}

func TestSetOffset_MatchTimeKeepsLocal(t *testing.T) {
	local := naive(2021, time.September, 10, 12, 0, 0)
	newLocal, newOffset := SetOffset(local, 3600, 7200, true)

	if !newLocal.Equal(local) {
		t.Errorf("local = %v, want unchanged %v", newLocal, local)
	}
	if newOffset != 7200 {
		t.Errorf("offset = %d, want 7200", newOffset)
	}
}

func TestSetOffset_InstantInvariantAcrossOffsets(t *testing.T) {
	local := naive(2003, time.February, 28, 23, 30, 15)
	for _, tc := range []struct{ old, new int }{
		{0, 3600}, {3600, -18000}, {-18000, 19800}, {19800, 0}, {45900, -45900},
	} {
		newLocal, newOffset := SetOffset(local, tc.old, tc.new, false)
		got := InstantFromLocal(newLocal, newOffset)
		want := InstantFromLocal(local, tc.old)
		if !got.Equal(want) {
			t.Errorf("old=%d new=%d: instant %v, want %v", tc.old, tc.new, got, want)
		}
	}
}

func TestAddDays_RoundTrip(t *testing.T) {
	local := naive(2021, time.September, 10, 12, 0, 0)
	for _, delta := range []int{1, 7, -30, 365, -366, 400} {
		got := AddDays(AddDays(local, delta), -delta)
		if !got.Equal(local) {
			t.Errorf("delta %d: round trip gave %v, want %v", delta, got, local)
		}
	}
}

func TestAddDays_CalendarRollover(t *testing.T) {
	tests := []struct {
		in   time.Time
		days int
		want time.Time
	}{
		{naive(2021, time.September, 10, 12, 0, 0), 1, naive(2021, time.September, 11, 12, 0, 0)},
		{naive(2021, time.December, 31, 23, 59, 59), 1, naive(2022, time.January, 1, 23, 59, 59)},
		{naive(2020, time.February, 28, 6, 0, 0), 1, naive(2020, time.February, 29, 6, 0, 0)},
		{naive(2021, time.February, 28, 6, 0, 0), 1, naive(2021, time.March, 1, 6, 0, 0)},
		{naive(2021, time.March, 1, 6, 0, 0), -1, naive(2021, time.February, 28, 6, 0, 0)},
	}
	for _, tc := range tests {
		if got := AddDays(tc.in, tc.days); !got.Equal(tc.want) {
			t.Errorf("AddDays(%v, %d) = %v, want %v", tc.in, tc.days, got, tc.want)
		}
	}
}

func TestSetDate_KeepsClock(t *testing.T) {
	local := naive(2021, time.September, 10, 12, 34, 56)
	got := SetDate(local, naive(1999, time.January, 2, 0, 0, 0))
	if want := naive(1999, time.January, 2, 12, 34, 56); !got.Equal(want) {
		t.Errorf("SetDate = %v, want %v", got, want)
	}
}

func TestSetTime_KeepsDate(t *testing.T) {
	local := naive(2021, time.September, 10, 12, 34, 56)
	got := SetTime(local, TimeOfDay{Hour: 1, Min: 2, Sec: 3})
	if want := naive(2021, time.September, 10, 1, 2, 3); !got.Equal(want) {
		t.Errorf("SetTime = %v, want %v", got, want)
	}
}

func TestAddDuration_RollsDate(t *testing.T) {
	local := naive(2021, time.September, 10, 23, 30, 0)
	got := AddDuration(local, 45*time.Minute)
	if want := naive(2021, time.September, 11, 0, 15, 0); !got.Equal(want) {
		t.Errorf("AddDuration = %v, want %v", got, want)
	}
}

func TestLocalInstantRoundTrip(t *testing.T) {
	instant := time.Date(2021, time.September, 10, 11, 0, 0, 0, time.UTC)
	for _, offset := range []int{0, 3600, -28800, 19800} {
		local := LocalFromInstant(instant, offset)
		if got := InstantFromLocal(local, offset); !got.Equal(instant) {
			t.Errorf("offset %d: round trip gave %v, want %v", offset, got, instant)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "+00:00"},
		{3600, "+01:00"},
		{-14400, "-04:00"},
		{19800, "+05:30"},
		{-45900, "-12:45"},
	}
	for _, tc := range tests {
		if got := FormatOffset(tc.in); got != tc.want {
			t.Errorf("FormatOffset(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGMTName(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "GMT"},
		{7200, "GMT+0200"},
		{-28800, "GMT-0800"},
		{19800, "GMT+0530"},
	}
	for _, tc := range tests {
		if got := GMTName(tc.in); got != tc.want {
			t.Errorf("GMTName(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
