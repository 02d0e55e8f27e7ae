// Package options holds the immutable rendering configuration shared by the
// scene builder, the offscreen renderer and the render facade.
package options

import (
	"fmt"
	"strings"
)

// Antialiasing is the multisample quality level used by the offscreen renderer.
type Antialiasing int

const (
	None Antialiasing = iota
	X2
	X4
)

// Samples returns the number of samples taken per pixel.
func (a Antialiasing) Samples() int {
	switch a {
	case X2:
		return 2
	case X4:
		return 4
	default:
		return 1
	}
}

func (a Antialiasing) String() string {
	switch a {
	case X2:
		return "2x"
	case X4:
		return "4x"
	default:
		return "none"
	}
}

// ParseAntialiasing accepts "none", "off", "1", "2x", "2", "4x" and "4".
func ParseAntialiasing(s string) (Antialiasing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off", "1", "1x":
		return None, nil
	case "2x", "2":
		return X2, nil
	case "4x", "4":
		return X4, nil
	}
	return None, fmt.Errorf("unknown antialiasing level %q", s)
}

// Options configures a single render. The zero value renders with no light;
// use Default for the standard configuration.
type Options struct {
	Antialiasing Antialiasing

	// Exposure is a plain brightness gain on the light, expected in [0,4].
	// It is passed through unvalidated and clamped where it becomes the light color.
	Exposure float64

	// Gamma is accepted for API compatibility and not applied.
	Gamma *float64

	// BrightLimbAngle is reserved for observer-dependent orientation and not applied.
	BrightLimbAngle *float64

	// OrientationCorrection rotates the moon about the viewing axis, in radians,
	// when non-nil and non-zero.
	OrientationCorrection *float64
}

// Default returns the options used by time-based renders.
func Default() Options {
	return Options{
		Antialiasing: None,
		Exposure:     1.0,
	}
}

// Orientation returns the effective rotation about the viewing axis and
// whether one should be applied.
func (o Options) Orientation() (float64, bool) {
	if o.OrientationCorrection == nil || *o.OrientationCorrection == 0 {
		return 0, false
	}
	return *o.OrientationCorrection, true
}

// Size is the requested output resolution in pixels.
type Size struct {
	Width  int
	Height int
}

// Square returns a Size with equal sides.
func Square(side int) Size {
	return Size{Width: side, Height: side}
}

// Normalize floors each dimension to at least one pixel.
func (s Size) Normalize() Size {
	return Size{Width: max(s.Width, 1), Height: max(s.Height, 1)}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
