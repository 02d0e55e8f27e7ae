package render

import (
	"math"

	"github.com/echoflaresat/mooncam/colors"
	"github.com/echoflaresat/mooncam/scene"
	"github.com/echoflaresat/mooncam/vectors"
)

// RayContext carries per-ray state and the constants needed by the shader.
type RayContext struct {
	Origin     vectors.Vec3 // camera position relative to the sphere centre
	LightDir   vectors.Vec3
	LightColor colors.Color4
	Sphere     scene.Sphere

	RayDirection   vectors.Vec3
	T              float64
	HitPoint       vectors.Vec3
	SurfaceNormal  vectors.Vec3
	LightIntensity float64
}

func NewRayContext(s scene.Scene) *RayContext {
	return &RayContext{
		Origin:     s.Camera.Position.Sub(s.Sphere.Center),
		LightDir:   s.Light.Direction(),
		LightColor: s.Light.Color,
		Sphere:     s.Sphere,
	}
}

// SetRayDirection intersects the ray with the sphere and updates the hit state.
// T is negative when the ray misses.
func (c *RayContext) SetRayDirection(rayDirection vectors.Vec3) {
	c.RayDirection = rayDirection
	c.T = intersectSphere(c.Origin, c.RayDirection, c.Sphere.Radius)
	if c.T < 0 {
		c.LightIntensity = 0
		return
	}

	c.HitPoint = c.Origin.Add(c.RayDirection.Scale(c.T))
	c.SurfaceNormal = c.HitPoint.Normalize()
	c.LightIntensity = math.Max(0, c.SurfaceNormal.Dot(c.LightDir))
}

// LocalNormal returns the surface normal in the sphere's own frame, undoing
// its rotation about the line of sight from the sphere centre to the camera.
func (c *RayContext) LocalNormal() vectors.Vec3 {
	if c.Sphere.Rotation == 0 {
		return c.SurfaceNormal
	}
	axis := c.Origin.Normalize()
	if axis == (vectors.Vec3{}) {
		axis = vectors.Vec3{Z: 1}
	}
	return c.SurfaceNormal.Rotate(axis, -c.Sphere.Rotation)
}

// intersectSphere calculates the intersection of a ray (O + t*D) with a sphere
// of radius r at the origin. Returns the closest positive t, or -1.0 if there
// is no intersection.
func intersectSphere(O, D vectors.Vec3, r float64) float64 {
	// b = 2*O·D, c = O·O - r^2, solve t^2 + b t + c = 0
	b := 2.0 * O.Dot(D)
	c := O.Dot(O) - r*r

	discriminant := b*b - 4.0*c
	if discriminant < 0 {
		return -1.0
	}

	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / 2.0
	t2 := (-b + sqrtDisc) / 2.0

	if t1 > 0 {
		return t1
	}
	if t2 > 0 {
		return t2
	}
	return -1.0
}
