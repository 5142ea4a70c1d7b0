package photos

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/starford/timewarp/internal/apperr"
)

// AppleScript implements Channel by shelling out to osascript.
type AppleScript struct{}

var _ Channel = (*AppleScript)(nil)

// NewAppleScript returns the osascript-backed channel.
func NewAppleScript() *AppleScript {
	return &AppleScript{}
}

const selectionScript = `
tell application "Photos"
	set sel to selection
	set ids to {}
	repeat with p in sel
		copy (get id of p) to end of ids
	end repeat
	set AppleScript's text item delimiters to ","
	return ids as text
end tell`

// Selection returns the UUIDs of the assets currently selected in Photos.
// Media item ids carry a "/L0/001" suffix which is stripped so the result
// matches the row-store's ZUUID values.
func (a *AppleScript) Selection(ctx context.Context) ([]string, error) {
	out, err := runOSAScript(ctx, selectionScript)
	if err != nil {
		return nil, fmt.Errorf("photos: get selection: %w", err)
	}
	var uuids []string
	for _, id := range strings.Split(strings.TrimSpace(out), ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		uuid, _, _ := strings.Cut(id, "/")
		uuids = append(uuids, uuid)
	}
	return uuids, nil
}

// SetDate sets the local date-time of one asset. Photos interprets the
// value as a naive calendar reading against the asset's stored timezone.
func (a *AppleScript) SetDate(ctx context.Context, uuid string, local time.Time) error {
	script := fmt.Sprintf(`
set d to current date
set year of d to %d
set month of d to %d
set day of d to %d
set time of d to (%d * hours + %d * minutes + %d)
tell application "Photos"
	set date of media item id %s to d
end tell`,
		local.Year(), int(local.Month()), local.Day(),
		local.Hour(), local.Minute(), local.Second(),
		quote(mediaItemID(uuid)))

	if _, err := runOSAScript(ctx, script); err != nil {
		return fmt.Errorf("photos: set date for %s: %w", uuid, err)
	}
	return nil
}

// AddToAlbum adds the given assets to a top-level album, creating it first
// when no album of that name exists.
func (a *AppleScript) AddToAlbum(ctx context.Context, name string, uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	items := make([]string, len(uuids))
	for i, uuid := range uuids {
		items[i] = "media item id " + quote(mediaItemID(uuid))
	}
	script := fmt.Sprintf(`
tell application "Photos"
	if not (exists container %[1]s) then
		make new album named %[1]s
	end if
	add {%[2]s} to container %[1]s
end tell`, quote(name), strings.Join(items, ", "))

	if _, err := runOSAScript(ctx, script); err != nil {
		return fmt.Errorf("photos: add %d items to album %q: %w", len(uuids), name, err)
	}
	return nil
}

// mediaItemID maps a row-store ZUUID to the id Photos scripting uses.
func mediaItemID(uuid string) string {
	return uuid + "/L0/001"
}

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func runOSAScript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("osascript: %s: %w", detail, apperr.ErrAutomation)
	}
	return stdout.String(), nil
}
