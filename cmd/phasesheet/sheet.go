package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/mooncam/lunar"
	"github.com/echoflaresat/mooncam/moon"
	"github.com/echoflaresat/mooncam/options"
)

// barHeight is the illumination gauge drawn under each tile.
const barHeight = 4

var background = gg.RGB(0.06, 0.06, 0.09)

// Layout places tiles on a grid with gap pixels between and around them.
type Layout struct {
	Tile options.Size
	Cols int
	Gap  int
}

func (l Layout) cellW() int { return l.Tile.Width + l.Gap }
func (l Layout) cellH() int { return l.Tile.Height + barHeight + l.Gap }

// Bounds returns the sheet size for n tiles.
func (l Layout) Bounds(n int) image.Rectangle {
	rows := (n + l.Cols - 1) / l.Cols
	return image.Rect(0, 0, l.Cols*l.cellW()+l.Gap, rows*l.cellH()+l.Gap)
}

// Origin returns the top-left corner of tile i.
func (l Layout) Origin(i int) image.Point {
	return image.Pt(l.Gap+(i%l.Cols)*l.cellW(), l.Gap+(i/l.Cols)*l.cellH())
}

// MonthPhases samples count phases evenly over one synodic month from start.
func MonthPhases(start time.Time, count int) []float64 {
	step := time.Duration(lunar.SynodicPeriod * 24 * float64(time.Hour) / float64(count))
	phases := make([]float64, count)
	for i := range phases {
		phases[i] = lunar.FractionalPhase(start.Add(time.Duration(i) * step))
	}
	return phases
}

// RenderTiles renders every phase with at most jobs renders in flight.
func RenderTiles(ctx context.Context, r *moon.Renderer, phases []float64, size options.Size, opts options.Options, jobs int) ([]image.Image, error) {
	tiles := make([]image.Image, len(phases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, phase := range phases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := png.Decode(bytes.NewReader(r.RenderPhase(phase, size, opts)))
			if err != nil {
				return fmt.Errorf("tile %d: %w", i, err)
			}
			tiles[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}

// Compose draws tiles and their illumination gauges onto one sheet.
func Compose(l Layout, tiles []image.Image, phases []float64) image.Image {
	b := l.Bounds(len(tiles))
	dc := gg.NewContext(b.Dx(), b.Dy())
	defer dc.Close()
	dc.ClearWithColor(background)

	for i, tile := range tiles {
		o := l.Origin(i)
		dc.DrawImage(gg.ImageBufFromImage(tile), float64(o.X), float64(o.Y))

		lit := lunar.Illumination(phases[i]) * float64(l.Tile.Width)
		if lit >= 1 {
			dc.SetRGB(0.95, 0.85, 0.45)
			dc.DrawRectangle(float64(o.X), float64(o.Y+l.Tile.Height+1), lit, barHeight-1)
			_ = dc.Fill()
		}
	}
	_ = dc.FlushGPU()
	return dc.Image()
}
