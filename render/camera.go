package render

import (
	"math"

	"github.com/echoflaresat/mooncam/scene"
	"github.com/echoflaresat/mooncam/vectors"
)

// Camera is a pinhole camera with an orthonormal basis.
type Camera struct {
	TanHalfFOV float64
	Position   vectors.Vec3
	Forward    vectors.Vec3
	Right      vectors.Vec3
	Up         vectors.Vec3
}

// NewCamera builds the basis for a camera at c.Position looking at c.Target,
// with +Y as the world up direction.
func NewCamera(c scene.Camera) (Camera, bool) {
	fwd := c.Target.Sub(c.Position)
	if fwd.Norm() < 1e-12 {
		return Camera{}, false
	}
	fwd = fwd.Normalize()

	globalUp := vectors.Vec3{X: 0, Y: 1, Z: 0}
	right := fwd.Cross(globalUp)
	if right.Norm() < 1e-6 {
		right = vectors.Vec3{X: 1, Y: 0, Z: 0} // looking straight up or down
	}
	right = right.Normalize()
	up := right.Cross(fwd).Normalize()

	fovRad := c.FOVDeg * math.Pi / 180.0
	return Camera{
		TanHalfFOV: math.Tan(fovRad / 2.0),
		Position:   c.Position,
		Forward:    fwd,
		Right:      right,
		Up:         up,
	}, true
}

// ComputeRay returns the normalized viewing direction through the image
// point (x, y), measured in pixels from the top-left corner. Pixel centres
// sit at half-integer coordinates. The field of view is vertical; the
// horizontal extent follows the aspect ratio.
func (c Camera) ComputeRay(x, y float64, width, height int) vectors.Vec3 {
	w := float64(width)
	h := float64(height)

	// NDC in [-1, +1], flip Y so +up is up on screen.
	xNDC := 2.0*x/w - 1.0
	yNDC := 1.0 - 2.0*y/h

	xPlane := xNDC * c.TanHalfFOV * (w / h)
	yPlane := yNDC * c.TanHalfFOV

	dir := c.Right.Scale(xPlane).
		Add(c.Up.Scale(yPlane)).
		Add(c.Forward)

	return dir.Normalize()
}
