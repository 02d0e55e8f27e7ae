// Package render rasterizes a scene offscreen into a pixel buffer.
//
// A Backend may be missing on a given build, or may fail to produce a frame.
// Both cases are reported as errors rather than panics so that callers can
// switch to a flat rendering.
package render

import (
	"errors"
	"image"

	"github.com/echoflaresat/mooncam/options"
	"github.com/echoflaresat/mooncam/scene"
)

var (
	// ErrUnavailable means the backend is not compiled into this binary.
	ErrUnavailable = errors.New("render: backend unavailable")

	// ErrRasterize means the backend could not produce a frame for the scene.
	ErrRasterize = errors.New("render: rasterization failed")
)

// Backend turns a scene into pixels.
//
// Rasterize returns an image of exactly size.Normalize() pixels, or a nil
// image and an error wrapping ErrUnavailable or ErrRasterize. The built-in
// backends are safe for concurrent use; a custom Backend that is not must
// be serialized by its caller.
type Backend interface {
	Name() string
	Rasterize(s scene.Scene, size options.Size, aa options.Antialiasing) (*image.NRGBA, error)
}

type unavailable struct{}

// Unavailable returns a backend that never renders. It stands in for the
// ray tracer in builds tagged nomoon3d.
func Unavailable() Backend {
	return unavailable{}
}

func (unavailable) Name() string { return "unavailable" }

func (unavailable) Rasterize(scene.Scene, options.Size, options.Antialiasing) (*image.NRGBA, error) {
	return nil, ErrUnavailable
}
