// Command phasesheet renders a synodic month of moon phases side by side.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/echoflaresat/mooncam/codec"
	"github.com/echoflaresat/mooncam/internal/atomicfile"
	"github.com/echoflaresat/mooncam/internal/config"
	"github.com/echoflaresat/mooncam/internal/logger"
	"github.com/echoflaresat/mooncam/moon"
	"github.com/echoflaresat/mooncam/texture"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "phasesheet:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("phasesheet", flag.ContinueOnError)
	start := fs.String("start", "", "First sample time in RFC3339 format; defaults to now")
	count := fs.Int("count", 8, "Number of phases to render")
	cols := fs.Int("cols", 4, "Tiles per row")
	gap := fs.Int("gap", 4, "Spacing between tiles in pixels")
	jobs := fs.Int("jobs", runtime.GOMAXPROCS(0), "Renders in flight")
	timeout := fs.Duration("timeout", 2*time.Minute, "Give up after this long")
	out := fs.String("out", "phases.png", "Output PNG file path")
	cfgFlags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 1 || *cols < 1 || *gap < 0 {
		return fmt.Errorf("count and cols must be positive and gap non-negative")
	}

	startTime := now()
	if *start != "" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		startTime = t
	}

	cfg, err := config.Load(cfgFlags.Path, cfgFlags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Log

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	cache, err := texture.NewCache(texture.DefaultProvider(cfg.Texture.HostDir, log.Named("texture")), cfg.Texture.CacheSize)
	if err != nil {
		return err
	}
	renderer := moon.New(
		moon.WithTextures(cache),
		moon.WithTextureName(cfg.Texture.Name),
		moon.WithLogger(log.Named("moon")),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	phases := MonthPhases(startTime, *count)
	layout := Layout{Tile: cfg.Size().Normalize(), Cols: min(*cols, *count), Gap: *gap}

	began := time.Now()
	tiles, err := RenderTiles(ctx, renderer, phases, layout.Tile, opts, *jobs)
	if err != nil {
		return fmt.Errorf("render tiles: %w", err)
	}
	log.Info("tiles rendered", zap.Int("count", len(tiles)), zap.Duration("elapsed", time.Since(began)))

	data, err := codec.Encode(Compose(layout, tiles, phases))
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFrom(*out, bytes.NewReader(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Fprintf(stdout, "-> created %s (%d phases from %s)\n", *out, len(phases), startTime.UTC().Format(time.RFC3339))
	return nil
}
