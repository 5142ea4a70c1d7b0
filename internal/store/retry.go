package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/timewarp/internal/apperr"
)

// isBusy reports whether err is the engine's "locked by another writer"
// condition.
func isBusy(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
}

// retryBusy runs fn up to p.Attempts times, sleeping with exponential
// backoff between busy failures. Non-busy errors surface immediately; an
// exhausted loop surfaces apperr.ErrBusy with the last engine error
// attached.
func retryBusy(p RetryPolicy, fn func() error) error {
	delay := p.MinDelay
	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		err = fn()
		if !isBusy(err) {
			return err
		}
		if attempt < p.Attempts-1 {
			time.Sleep(delay)
			delay *= 2
			if delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
	}
	return fmt.Errorf("store: still locked after %d attempts: %v: %w", p.Attempts, err, apperr.ErrBusy)
}
