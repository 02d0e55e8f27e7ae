//go:build nomoon3d

package render

// Default returns the backend compiled into this binary. Builds tagged
// nomoon3d leave the ray tracer out of the default path.
func Default() Backend {
	return Unavailable()
}
