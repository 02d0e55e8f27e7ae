//go:build !nomoon3d

package render

// Default returns the backend compiled into this binary.
func Default() Backend {
	return NewRaytracer()
}
