package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/echoflaresat/mooncam/internal/atomicfile"
	"github.com/echoflaresat/mooncam/internal/config"
	"github.com/echoflaresat/mooncam/internal/logger"
	"github.com/echoflaresat/mooncam/lunar"
	"github.com/echoflaresat/mooncam/moon"
	"github.com/echoflaresat/mooncam/render"
	"github.com/echoflaresat/mooncam/texture"
)

type cliFlags struct {
	phase      *float64
	timeStr    *string
	lat, lon   *float64
	out        *string
	saveConfig *string
	flat       *bool
	showHelp   *bool
	cfg        *config.Flags
}

func defineFlags(fs *flag.FlagSet) cliFlags {
	return cliFlags{
		phase:   fs.Float64("phase", 0, "Phase fraction: 0 new, 0.25 first quarter, 0.5 full (overrides -time)"),
		timeStr: fs.String("time", "", "Time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),
		lat:     fs.Float64("lat", moon.DefaultLocation.Latitude, "Observer latitude in degrees"),
		lon:     fs.Float64("lon", moon.DefaultLocation.Longitude, "Observer longitude in degrees"),

		out:        fs.String("out", "moon.png", "Output PNG file path"),
		saveConfig: fs.String("save-config", "", "Write the effective config to this .yaml or .toml file"),
		flat:       fs.Bool("flat", false, "Skip the 3-D renderer and draw the flat disk"),

		showHelp: fs.Bool("h", false, "Show this help message"),
		cfg:      config.RegisterFlags(fs),
	}
}

func printHelp(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, `Moon Renderer - Lunar Phase Image Generator

Usage:
  %[1]s [options]

`, fs.Name())

	printGroup(fs, "Phase Options", []string{"phase", "time", "lat", "lon"})
	printGroup(fs, "Rendering Options", []string{"size", "width", "height", "aa", "exposure", "orientation", "flat"})
	printGroup(fs, "Assets", []string{"texture", "texture-dir"})
	printGroup(fs, "Output", []string{"out", "save-config"})
	printGroup(fs, "Misc", []string{"config", "log-level", "log-file", "h"})
}

func printGroup(fs *flag.FlagSet, title string, keys []string) {
	w := fs.Output()
	fmt.Fprintf(w, "%s:\n", title)
	for _, name := range keys {
		if f := fs.Lookup(name); f != nil {
			fmt.Fprintf(w, "  -%-12s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(w)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "mooncam:", err)
		os.Exit(1)
	}
}

// run renders one image as described by args and reports the phase on stdout.
func run(args []string, stdout io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("mooncam", flag.ContinueOnError)
	cli := defineFlags(fs)
	fs.Usage = func() { printHelp(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cli.showHelp {
		printHelp(fs)
		return nil
	}

	cfg, err := config.Load(cli.cfg.Path, cli.cfg)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Log

	if *cli.saveConfig != "" {
		if err := cfg.SaveTo(*cli.saveConfig); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		log.Info("config saved", zap.String("path", *cli.saveConfig))
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	backend := render.Default()
	if *cli.flat {
		backend = render.Unavailable()
	}
	renderer := moon.New(
		moon.WithBackend(backend),
		moon.WithTextures(texture.DefaultProvider(cfg.Texture.HostDir, log.Named("texture"))),
		moon.WithTextureName(cfg.Texture.Name),
		moon.WithLogger(log.Named("moon")),
	)

	phase, explicit := 0.0, false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "phase" {
			explicit = true
		}
	})

	var data []byte
	if explicit {
		phase = lunar.Clamp(*cli.phase)
		data = renderer.RenderPhase(phase, cfg.Size(), opts)
	} else {
		renderTime, err := parseTime(*cli.timeStr, now)
		if err != nil {
			return err
		}
		phase = lunar.FractionalPhase(renderTime)
		loc := &moon.Coordinate{Latitude: *cli.lat, Longitude: *cli.lon}
		data = renderer.RenderAtWith(renderTime, loc, cfg.Size(), opts)
	}

	if err := atomicfile.Write(*cli.out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *cli.out, err)
	}

	trend := "waning"
	if lunar.IsWaxing(phase) {
		trend = "waxing"
	}
	fmt.Fprintf(stdout, "%s: %s, %.1f%% illuminated (%s), age %.1f days (%v)\n",
		*cli.out, lunar.Name(phase), lunar.Illumination(phase)*100, trend, lunar.Age(phase), cfg.Size().Normalize())
	return nil
}

func parseTime(timeStr string, now func() time.Time) (time.Time, error) {
	if timeStr == "" {
		return now(), nil
	}
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return t, nil
}
