// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/starford/timewarp/internal/engine"
	"github.com/starford/timewarp/internal/exiftool"
	"github.com/starford/timewarp/internal/photos"
	"github.com/starford/timewarp/internal/reconcile"
	"github.com/starford/timewarp/internal/store"
	"github.com/starford/timewarp/internal/timeutil"
)

// Run executes one invocation against the assets currently selected in
// Photos. Process-level failures (unopenable row-store, missing exiftool,
// invalid operation) return an error before any asset is touched; per-asset
// failures are reported and the batch continues.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	req := app.request
	if req.Mode == ModeWarp {
		if err := req.Operation.Validate(); err != nil {
			return err
		}
	}

	// Startup-time configuration checks, before any asset is processed.
	var tool *exiftool.Tool
	if req.Mode == ModeCompare || req.Operation.NeedsExiftool() {
		var err error
		if tool, err = exiftool.Find(cfg.Exiftool.Path); err != nil {
			return err
		}
	}

	db, err := store.Open(cfg.Library.Path, cfg.Retry.Policy())
	if err != nil {
		return err
	}
	defer db.Close()

	channel := app.channel
	if channel == nil {
		channel = photos.NewAppleScript()
	}

	// Point-in-time selection snapshot, taken once per invocation.
	uuids, err := channel.Selection(ctx)
	if err != nil {
		return fmt.Errorf("get selection (is Photos open with photos selected?): %w", err)
	}
	if len(uuids) == 0 {
		logger.Warn("no photos selected")
		return nil
	}
	logger.Info("processing selection", slog.Int("count", len(uuids)))

	switch req.Mode {
	case ModeInspect:
		return inspect(db, uuids, logger)
	case ModeCompare:
		return compareExif(ctx, db, tool, channel, uuids, req.Album, logger)
	default:
		return warp(ctx, db, tool, channel, uuids, req.Operation, logger)
	}
}

func warp(ctx context.Context, db *store.DB, tool *exiftool.Tool, channel photos.Channel, uuids []string, op engine.Operation, logger *slog.Logger) error {
	// *exiftool.Tool is only handed to the engine when present; a nil
	// concrete pointer must not become a non-nil interface.
	var exifTool engine.ExifTool
	if tool != nil {
		exifTool = tool
	}
	eng := engine.New(db, channel, exifTool, logger)
	outcomes := eng.Batch(ctx, uuids, op)

	for _, out := range outcomes {
		for _, note := range out.Notes {
			logger.Info(note, slog.String("uuid", out.UUID))
		}
		if out.Status == engine.StatusUpdated {
			logger.Info("updated",
				slog.String("uuid", out.UUID),
				slog.String("fields", strings.Join(out.Fields, ", ")))
		}
	}

	s := engine.Summarize(outcomes)
	logger.Info("batch complete",
		slog.Int("updated", s.Updated),
		slog.Int("no_op", s.NoOp),
		slog.Int("failed", s.Failed))
	if s.TotalFailure() {
		return fmt.Errorf("all %d assets failed", s.Failed)
	}
	return nil
}

func inspect(db *store.DB, uuids []string, logger *slog.Logger) error {
	fmt.Println("filename, uuid, photo time (local), photo time, timezone offset, timezone name")
	for _, uuid := range uuids {
		rec, err := db.GetAsset(uuid)
		if err != nil {
			logger.Warn("skipping asset", slog.String("uuid", uuid), slog.String("error", err.Error()))
			continue
		}
		fmt.Printf("%s, %s, %s, %s%s, %s, %s\n",
			rec.Filename, rec.UUID,
			rec.Local.Format("2006-01-02 15:04:05"),
			rec.Local.Format("2006-01-02 15:04:05"), timeutil.FormatOffset(rec.TZOffset),
			timeutil.FormatOffset(rec.TZOffset), rec.TZName)
	}
	return nil
}

func compareExif(ctx context.Context, db *store.DB, tool *exiftool.Tool, channel photos.Channel, uuids []string, album string, logger *slog.Logger) error {
	fmt.Println("filename, uuid, photo time (Photos), photo time (EXIF), timezone offset (Photos), timezone offset (EXIF)")
	var differing []string
	for _, uuid := range uuids {
		rec, err := db.GetAsset(uuid)
		if err != nil {
			logger.Warn("skipping asset", slog.String("uuid", uuid), slog.String("error", err.Error()))
			continue
		}
		var fact exiftool.Fact
		if rec.OriginalPath != "" {
			if fact, err = tool.ReadFact(ctx, rec.OriginalPath); err != nil {
				logger.Warn("skipping asset", slog.String("uuid", uuid), slog.String("error", err.Error()))
				continue
			}
		}
		d := reconcile.Compare(rec, fact)
		if d.Different() {
			differing = append(differing, uuid)
		}
		fmt.Printf("%s, %s, %s %s, %s %s, %s, %s\n",
			d.Filename, d.UUID,
			d.PhotosDate, d.PhotosTime, d.ExifDate, d.ExifTime,
			d.PhotosTZ, d.ExifTZ)
	}

	if album != "" && len(differing) > 0 {
		if err := channel.AddToAlbum(ctx, album, differing); err != nil {
			return fmt.Errorf("add differing assets to album %q: %w", album, err)
		}
		logger.Info("added differing assets to album",
			slog.String("album", album),
			slog.Int("count", len(differing)))
	}
	return nil
}
