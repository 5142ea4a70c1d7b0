package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/timewarp/internal"
	"github.com/starford/timewarp/internal/engine"
	"github.com/starford/timewarp/internal/timeutil"
	pkgconfig "github.com/starford/timewarp/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if configPath := cmd.String("config"); configPath != "" {
		if err := pkgconfig.LoadIfPresent(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Flags override file configuration.
	if lib := cmd.String("library"); lib != "" {
		cfg.Library.Path = lib
	}
	if p := cmd.String("exiftool-path"); p != "" {
		cfg.Exiftool.Path = p
	}
	if cmd.Bool("verbose") {
		cfg.App.LogLevel = slog.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithRequest(req),
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// buildRequest parses the operation flags into a Request.
func buildRequest(cmd *cli.Command) (internal.Request, error) {
	var req internal.Request
	switch {
	case cmd.Bool("inspect"):
		req.Mode = internal.ModeInspect
		return req, nil
	case cmd.Bool("compare-exif"):
		req.Mode = internal.ModeCompare
		req.Album = cmd.String("add-to-album")
		return req, nil
	}

	var op engine.Operation
	if s := cmd.String("date"); s != "" {
		d, err := timeutil.ParseDate(s)
		if err != nil {
			return req, err
		}
		op.Date = &d
	}
	if s := cmd.String("date-delta"); s != "" {
		d, err := timeutil.ParseDateDelta(s)
		if err != nil {
			return req, err
		}
		op.DateDelta = &d
	}
	if s := cmd.String("time"); s != "" {
		tod, err := timeutil.ParseTimeOfDay(s)
		if err != nil {
			return req, err
		}
		op.Time = &tod
	}
	if s := cmd.String("time-delta"); s != "" {
		d, err := timeutil.ParseTimeDelta(s)
		if err != nil {
			return req, err
		}
		op.TimeDelta = &d
	}
	if s := cmd.String("timezone"); s != "" {
		off, err := timeutil.ParseUTCOffset(s)
		if err != nil {
			return req, err
		}
		op.Timezone = &off
	}
	op.MatchTime = cmd.Bool("match-time")
	op.PullExif = cmd.Bool("pull-exif")
	op.PushExif = cmd.Bool("push-exif")

	req.Mode = internal.ModeWarp
	req.Operation = op
	return req, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "timewarp",
		Usage: "Adjust date/time/timezone of the photos currently selected in Apple Photos",
		Description: "Changes are applied to all photos currently selected in Photos. " +
			"Photos selected in a Smart Album cannot be accessed; select them in a " +
			"regular album or in the 'All Photos' view.",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   "Set date for selected photos, format 'YYYY-MM-DD'",
			},
			&cli.StringFlag{
				Name:    "date-delta",
				Aliases: []string{"D"},
				Usage:   "Adjust date by DELTA: '±D days', '±W weeks', or '±D' (days)",
			},
			&cli.StringFlag{
				Name:    "time",
				Aliases: []string{"t"},
				Usage:   "Set time for selected photos: 'HH:MM:SS', 'HH:MM:SS.fff', or 'HH:MM'",
			},
			&cli.StringFlag{
				Name:    "time-delta",
				Aliases: []string{"T"},
				Usage:   "Adjust time by DELTA: '±HH:MM:SS', '±N hours|minutes|seconds', or '±S' (seconds)",
			},
			&cli.StringFlag{
				Name:    "timezone",
				Aliases: []string{"z"},
				Usage: "Set timezone as offset from UTC: '±HH:MM', '±H:MM', or '±HHMM'. " +
					"The absolute time of the photo is preserved, so the displayed local " +
					"time shifts, matching the Photos 'Get Info' behavior; see --match-time",
			},
			&cli.BoolFlag{
				Name:    "match-time",
				Aliases: []string{"m"},
				Usage: "With --timezone, keep the photo's local clock reading and change " +
					"only the recorded timezone. Use when the camera clock was right but " +
					"the timezone was missing or wrong",
			},
			&cli.BoolFlag{
				Name:    "inspect",
				Aliases: []string{"i"},
				Usage:   "Print date/time/timezone for each selected photo without changing anything",
			},
			&cli.BoolFlag{
				Name:    "compare-exif",
				Aliases: []string{"c"},
				Usage:   "Compare date/time/timezone in Photos to the file's EXIF data for each selected photo",
			},
			&cli.StringFlag{
				Name:    "add-to-album",
				Aliases: []string{"a"},
				Usage:   "With --compare-exif, add photos with differences to this album (created if absent)",
			},
			&cli.BoolFlag{
				Name:  "pull-exif",
				Usage: "Set date/time/timezone in Photos from the file's EXIF data; applied before any other change",
			},
			&cli.BoolFlag{
				Name:  "push-exif",
				Usage: "Write the final date/time/timezone into the original file's EXIF data; applied after all other changes",
			},
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"L"},
				Usage:   "Path to the Photos library bundle",
				Sources: cli.EnvVars("TIMEWARP_LIBRARY"),
			},
			&cli.StringFlag{
				Name:    "exiftool-path",
				Aliases: []string{"p"},
				Usage:   "Path to the exiftool executable (defaults to looking in $PATH)",
				Sources: cli.EnvVars("TIMEWARP_EXIFTOOL"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Show verbose output",
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
