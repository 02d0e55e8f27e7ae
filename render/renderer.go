package render

import (
	"fmt"
	"image"

	"github.com/echoflaresat/mooncam/colors"
	"github.com/echoflaresat/mooncam/options"
	"github.com/echoflaresat/mooncam/scene"
)

// Raytracer is the CPU backend. It casts one or more primary rays per pixel
// at the sphere and shades hits with a single Lambert term. It holds no state
// and is safe for concurrent use.
type Raytracer struct{}

func NewRaytracer() Raytracer {
	return Raytracer{}
}

func (Raytracer) Name() string { return "raytracer" }

// Rasterize renders s into a new image of the given size. Panics raised while
// tracing are recovered and reported as ErrRasterize.
func (r Raytracer) Rasterize(s scene.Scene, size options.Size, aa options.Antialiasing) (img *image.NRGBA, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, fmt.Errorf("%w: panic: %v", ErrRasterize, rec)
		}
	}()

	camera, ok := NewCamera(s.Camera)
	if !ok {
		return nil, fmt.Errorf("%w: camera position equals its target", ErrRasterize)
	}
	if !(s.Sphere.Radius > 0) {
		return nil, fmt.Errorf("%w: sphere radius %v", ErrRasterize, s.Sphere.Radius)
	}

	return RaytraceScenePixels(NewRayContext(s), camera, size.Normalize(), aa), nil
}

// SampleOffsets returns the sub-pixel sample positions for aa, relative to
// the pixel centre. 2x uses the diagonal pair and 4x the rotated grid.
func SampleOffsets(aa options.Antialiasing) [][2]float64 {
	switch aa {
	case options.X2:
		return [][2]float64{{-0.25, -0.25}, {0.25, 0.25}}
	case options.X4:
		return [][2]float64{
			{-2.0 / 16, -6.0 / 16},
			{6.0 / 16, -2.0 / 16},
			{-6.0 / 16, 2.0 / 16},
			{2.0 / 16, 6.0 / 16},
		}
	default:
		return [][2]float64{{0, 0}}
	}
}

// ShadeSurface returns the lit color at the current hit point.
func ShadeSurface(ctx *RayContext) colors.Color4 {
	albedo := ctx.Sphere.Material.At(ctx.LocalNormal())
	return albedo.Mul(ctx.LightColor).ScaleRGB(ctx.LightIntensity)
}

// RaytraceScenePixels traces every pixel of a W×H frame, averaging the
// samples for aa. Misses are opaque black.
func RaytraceScenePixels(ctx *RayContext, camera Camera, size options.Size, aa options.Antialiasing) *image.NRGBA {
	W, H := size.Width, size.Height
	offsets := SampleOffsets(aa)
	N := float64(len(offsets))

	img := image.NewNRGBA(image.Rect(0, 0, W, H))
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			colorAccum := colors.Color4{}
			for _, off := range offsets {
				px := float64(x) + 0.5 + off[0]
				py := float64(y) + 0.5 + off[1]
				ctx.SetRayDirection(camera.ComputeRay(px, py, W, H))

				c := colors.Black()
				if ctx.T > 0 {
					c = ShadeSurface(ctx)
				}
				colorAccum = colorAccum.Add(c)
			}

			colorOut := colorAccum.Scale(1.0 / N)
			colorOut.A = 1
			img.SetNRGBA(x, y, colorOut.ToNRGBA())
		}
	}
	return img
}
