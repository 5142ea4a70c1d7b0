// Package photos is the automation channel to the running Photos app.
//
// Local date-time writes have no known safe direct-write path into the
// row-store, so they go through AppleScript, as do the selection snapshot
// and album membership. Each call is a blocking osascript subprocess.
package photos

import (
	"context"
	"time"
)

// Channel is the host-app automation surface. Consumers depend on this
// interface rather than the osascript implementation to facilitate testing
// with fakes.
type Channel interface {
	// Selection returns the UUIDs of the currently selected assets, in
	// selection order, as a point-in-time snapshot.
	Selection(ctx context.Context) ([]string, error)
	// SetDate sets an asset's local date-time to the given naive value.
	SetDate(ctx context.Context, uuid string, local time.Time) error
	// AddToAlbum adds assets to the named album, creating it if absent.
	AddToAlbum(ctx context.Context, name string, uuids []string) error
}
