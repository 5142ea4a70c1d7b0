// Package exiftool wraps the third-party exiftool binary for reading and
// writing embedded date/time/timezone metadata in media files.
package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/timewarp/internal/apperr"
	"github.com/starford/timewarp/internal/timeutil"
)

// Tool invokes one exiftool binary. Each call is a blocking subprocess.
type Tool struct {
	path string
}

// Find locates exiftool, preferring the configured path over $PATH. A
// missing binary is a startup-time configuration error, not a per-asset
// failure.
func Find(configured string) (*Tool, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return nil, fmt.Errorf("exiftool: %s: %v: %w", configured, err, apperr.ErrExtractionTool)
		}
		return &Tool{path: configured}, nil
	}
	p, err := exec.LookPath("exiftool")
	if err != nil {
		return nil, fmt.Errorf("exiftool: not found in $PATH (see https://exiftool.org/): %w", apperr.ErrExtractionTool)
	}
	return &Tool{path: p}, nil
}

// ReadFact extracts the (date, time, offset) triple from a media file.
func (t *Tool) ReadFact(ctx context.Context, path string) (Fact, error) {
	out, err := t.run(ctx, "-j", "-G", path)
	if err != nil {
		return Fact{}, err
	}

	var reports []map[string]any
	if err := json.Unmarshal(out, &reports); err != nil {
		return Fact{}, fmt.Errorf("exiftool: unparseable report for %s: %v: %w", path, err, apperr.ErrExtractionTool)
	}
	if len(reports) == 0 {
		return Fact{}, fmt.Errorf("exiftool: empty report for %s: %w", path, apperr.ErrExtractionTool)
	}
	return factFromReport(reports[0]), nil
}

// WriteFact writes the final date, time, and offset into the file's
// embedded metadata, using the photo or QuickTime tag set as appropriate.
func (t *Tool) WriteFact(ctx context.Context, path string, local time.Time, offsetSeconds int) error {
	offset := timeutil.FormatOffset(offsetSeconds)
	datetime := local.Format("2006:01:02 15:04:05")

	var args []string
	if IsVideo(path) {
		// QuickTime:CreateDate is UTC with no zone; CreationDate must
		// carry the offset or Photos shows invalid values.
		creation := datetime + offset
		utc := timeutil.InstantFromLocal(local, offsetSeconds)
		args = []string{
			"-QuickTime:CreationDate=" + creation,
			"-QuickTime:CreateDate=" + utc.Format("2006:01:02 15:04:05"),
		}
	} else {
		args = []string{
			"-EXIF:DateTimeOriginal=" + datetime,
			"-EXIF:CreateDate=" + datetime,
			"-IPTC:DateCreated=" + local.Format("2006:01:02"),
			"-IPTC:TimeCreated=" + local.Format("15:04:05") + offset,
			"-EXIF:OffsetTimeOriginal=" + offset,
		}
	}
	args = append(args, "-overwrite_original", path)

	_, err := t.run(ctx, args...)
	return err
}

// IsVideo reports whether the file takes QuickTime rather than EXIF tags.
func IsVideo(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mov", ".mp4", ".m4v", ".avi", ".mpg", ".mpeg":
		return true
	}
	return false
}

func (t *Tool) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("exiftool: %s: %w", detail, apperr.ErrExtractionTool)
	}
	return stdout.Bytes(), nil
}
