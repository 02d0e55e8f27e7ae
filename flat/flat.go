// Package flat draws the moon as a plain white disk on black. It has no
// dependency on the 3-D path and cannot fail.
package flat

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/echoflaresat/mooncam/options"
)

// Inset is the margin around the disk as a fraction of the shorter side.
const Inset = 0.15

// Render fills a canvas of the given size with black and draws a filled
// white ellipse inscribed in the square [inset, inset, r-2*inset, r-2*inset],
// where r is the shorter side.
func Render(size options.Size) *image.NRGBA {
	size = size.Normalize()
	img := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)

	r := float32(min(size.Width, size.Height))
	inset := r * Inset
	d := r - 2*inset

	z := vector.NewRasterizer(size.Width, size.Height)
	ellipse(z, inset+d/2, inset+d/2, d/2, d/2)
	z.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{})
	return img
}

// ellipse appends a closed ellipse centred at (x, y) as four cubic arcs.
func ellipse(z *vector.Rasterizer, x, y, rx, ry float32) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	z.MoveTo(x+rx, y)
	z.CubeTo(x+rx, y+oy, x+ox, y+ry, x, y+ry)
	z.CubeTo(x-ox, y+ry, x-rx, y+oy, x-rx, y)
	z.CubeTo(x-rx, y-oy, x-ox, y-ry, x, y-ry)
	z.CubeTo(x+ox, y-ry, x+rx, y-oy, x+rx, y)
	z.ClosePath()
}
