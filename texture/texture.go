package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/echoflaresat/mooncam/colors"
	"github.com/echoflaresat/mooncam/vectors"
	"github.com/echoflaresat/tiff"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP format with image.Decode
	_ "golang.org/x/image/tiff" // register compressed TIFF with image.Decode
	_ "golang.org/x/image/webp" // register WebP format with image.Decode
	_ "image/jpeg"              // register JPEG format with image.Decode
	_ "image/png"               // register PNG format with image.Decode
)

// MaxWidth bounds the width of a decoded texture. Wider images are
// downscaled on load; the sphere never covers enough pixels to need more.
const MaxWidth = 4096

// ErrNotFound is returned by a Source that has no asset under the requested name.
var ErrNotFound = errors.New("texture: not found")

// Texture is an equirectangular RGB image sampled by direction vectors.
type Texture struct {
	Width  int
	Height int
	img    *image.NRGBA
}

// New wraps img as a texture, copying it into memory.
func New(img image.Image) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxWidth {
		h = max(1, h*MaxWidth/w)
		w = MaxWidth
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}
	return &Texture{Width: w, Height: h, img: dst}
}

// Decode reads an image from r. TIFF is tried first since that is how the
// large lunar mosaics ship; every other registered format follows.
func Decode(r io.ReaderAt, size int64) (*Texture, error) {
	img, err := tiff.Decode(io.NewSectionReader(r, 0, size))
	if err != nil {
		// fallback to image codecs
		img, _, err = image.Decode(io.NewSectionReader(r, 0, size))
		if err != nil {
			return nil, fmt.Errorf("decode texture: %w", err)
		}
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode texture: empty image %v", b)
	}
	return New(img), nil
}

// Sample maps the unit direction d (sphere-local, +Y up, +Z toward the viewer)
// to texture coordinates and returns the texel there, without interpolation.
// Longitude 0 faces the viewer and lands in the middle column.
func (t *Texture) Sample(d vectors.Vec3) colors.Color4 {
	lat := math.Atan2(d.Y, math.Sqrt(d.X*d.X+d.Z*d.Z))
	lon := math.Atan2(d.X, d.Z)

	u := (0.5 + lon/(2*math.Pi)) * float64(t.Width)
	u = math.Mod(u, float64(t.Width))
	if u < 0 {
		u += float64(t.Width)
	}
	v := (0.5 - lat/math.Pi) * float64(t.Height-1)

	x := int(u)
	y := int(v)

	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}

	return colors.FromStandardColor(t.img.NRGBAAt(x, y))
}
