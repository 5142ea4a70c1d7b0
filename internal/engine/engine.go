// Package engine orchestrates one transactional metadata update per asset.
//
// Each asset's edit moves through two non-atomic channels: the local
// date-time goes through the Photos automation channel, the UTC offset is
// written directly into the row-store. The two steps are sequential with
// independently reported outcomes; there is no cross-channel atomicity, so
// a failure between them can leave the automation write applied without
// the direct write (never the reverse).
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/timewarp/internal/exiftool"
	"github.com/starford/timewarp/internal/photos"
	"github.com/starford/timewarp/internal/reconcile"
	"github.com/starford/timewarp/internal/store"
	"github.com/starford/timewarp/internal/timeutil"
)

// Store is the row-store surface the engine needs.
type Store interface {
	GetAsset(uuid string) (store.AssetRecord, error)
	UpdateTimezone(uuid string, offsetSeconds int, tzName string) error
}

// ExifTool is the extraction-tool surface the engine needs; nil when the
// operation involves no pull or push.
type ExifTool interface {
	ReadFact(ctx context.Context, path string) (exiftool.Fact, error)
	WriteFact(ctx context.Context, path string, local time.Time, offsetSeconds int) error
}

// Compile-time checks against the real collaborators.
var (
	_ Store    = (*store.DB)(nil)
	_ ExifTool = (*exiftool.Tool)(nil)
)

// Engine applies operations to assets one at a time.
type Engine struct {
	store   Store
	channel photos.Channel
	exif    ExifTool
	log     *slog.Logger
}

// New creates an Engine. exif may be nil if the operations to be applied
// never pull or push EXIF data.
func New(st Store, channel photos.Channel, exif ExifTool, log *slog.Logger) *Engine {
	return &Engine{store: st, channel: channel, exif: exif, log: log}
}

// Batch applies op to each asset in selection order. A failure on one
// asset never aborts the rest; every asset gets exactly one Outcome, in
// input order.
func (e *Engine) Batch(ctx context.Context, uuids []string, op Operation) []Outcome {
	outcomes := make([]Outcome, 0, len(uuids))
	for _, uuid := range uuids {
		out := e.Apply(ctx, uuid, op)
		if out.Err != nil {
			e.log.Warn("asset update failed",
				slog.String("uuid", uuid),
				slog.String("error", out.Err.Error()))
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// Apply runs one operation against one asset: read current state, compute
// target values, route the local date-time through the automation channel
// and the offset through the direct driver, then push to the file if
// requested. Push always runs last; pull always runs first.
func (e *Engine) Apply(ctx context.Context, uuid string, op Operation) Outcome {
	out := Outcome{UUID: uuid, Status: StatusNoOp}

	rec, err := e.store.GetAsset(uuid)
	if err != nil {
		return out.failed(err)
	}
	local, offset := rec.Local, rec.TZOffset

	if op.PullExif {
		switch {
		case rec.OriginalPath == "":
			out.note("pull skipped: original not on disk")
		default:
			fact, err := e.exif.ReadFact(ctx, rec.OriginalPath)
			if err != nil {
				return out.failed(err)
			}
			if fact.Empty() {
				out.note("pull skipped: no usable metadata in file")
			} else {
				local, offset = reconcile.Merge(fact, local, offset)
			}
		}
	}

	if op.Date != nil {
		local = timeutil.SetDate(local, *op.Date)
	}
	if op.DateDelta != nil {
		local = timeutil.AddDays(local, *op.DateDelta)
	}
	if op.Time != nil {
		local = timeutil.SetTime(local, *op.Time)
	}
	if op.TimeDelta != nil {
		local = timeutil.AddDuration(local, *op.TimeDelta)
	}
	if op.Timezone != nil {
		local, offset = timeutil.SetOffset(local, offset, *op.Timezone, op.MatchTime)
	}

	if !local.Equal(rec.Local) {
		if err := e.channel.SetDate(ctx, uuid, local); err != nil {
			return out.failed(err)
		}
		out.changed(FieldDateTime)
		e.log.Debug("set local date-time",
			slog.String("uuid", uuid),
			slog.Time("from", rec.Local),
			slog.Time("to", local))
	}

	if offset != rec.TZOffset {
		name := timeutil.GMTName(offset)
		if err := e.store.UpdateTimezone(uuid, offset, name); err != nil {
			// The automation write above, if any, is already applied
			// and cannot be rolled back from here.
			return out.failed(err)
		}
		out.changed(FieldTimezone)
		e.log.Debug("set timezone",
			slog.String("uuid", uuid),
			slog.String("from", timeutil.FormatOffset(rec.TZOffset)),
			slog.String("to", timeutil.FormatOffset(offset)))
	}

	if op.PushExif {
		if rec.OriginalPath == "" {
			out.note("push skipped: original not on disk")
		} else {
			if err := e.exif.WriteFact(ctx, rec.OriginalPath, local, offset); err != nil {
				return out.failed(err)
			}
			out.changed(FieldExif)
			e.log.Debug("pushed metadata to file",
				slog.String("uuid", uuid),
				slog.String("path", rec.OriginalPath))
		}
	}

	return out
}
