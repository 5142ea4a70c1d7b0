package store

import (
	"errors"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/timewarp/internal/apperr"
)

var errAlwaysBusy = sqlite3.Error{Code: sqlite3.ErrBusy}

func TestRetryBusy_ExhaustsConfiguredAttempts(t *testing.T) {
	p := RetryPolicy{Attempts: 5, MinDelay: time.Microsecond, MaxDelay: 2 * time.Microsecond}
	calls := 0
	err := retryBusy(p, func() error {
		calls++
		return errAlwaysBusy
	})
	if calls != 5 {
		t.Errorf("calls = %d, want exactly 5", calls)
	}
	if !errors.Is(err, apperr.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
}

func TestRetryBusy_RecoversMidway(t *testing.T) {
	p := RetryPolicy{Attempts: 5, MinDelay: time.Microsecond, MaxDelay: 2 * time.Microsecond}
	calls := 0
	err := retryBusy(p, func() error {
		calls++
		if calls < 3 {
			return errAlwaysBusy
		}
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryBusy_NonBusyErrorSurfacesImmediately(t *testing.T) {
	p := DefaultRetryPolicy()
	boom := errors.New("boom")
	calls := 0
	err := retryBusy(p, func() error {
		calls++
		return boom
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestIsBusy(t *testing.T) {
	if !isBusy(sqlite3.Error{Code: sqlite3.ErrBusy}) {
		t.Error("ErrBusy not recognized")
	}
	if !isBusy(sqlite3.Error{Code: sqlite3.ErrLocked}) {
		t.Error("ErrLocked not recognized")
	}
	if isBusy(errors.New("other")) {
		t.Error("unrelated error treated as busy")
	}
	if isBusy(nil) {
		t.Error("nil treated as busy")
	}
}
