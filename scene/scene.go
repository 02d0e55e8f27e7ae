// Package scene builds the per-render 3-D description of the moon: a unit
// sphere, one directional light placed by the phase angle, and a fixed camera.
package scene

import (
	"github.com/soniakeys/unit"

	"github.com/echoflaresat/mooncam/colors"
	"github.com/echoflaresat/mooncam/options"
	"github.com/echoflaresat/mooncam/texture"
	"github.com/echoflaresat/mooncam/vectors"
)

const (
	// LightDistance is how far from the sphere centre the light is placed.
	LightDistance = 10.0

	// CameraDistance is the camera offset along +Z.
	CameraDistance = 3.0

	// FOVDeg is the camera's vertical field of view in degrees.
	FOVDeg = 60.0

	// MaxExposure bounds the light gain.
	MaxExposure = 4.0
)

// FlatAlbedo is the surface color used when no texture is available.
var FlatAlbedo = colors.Gray(0.85)

// Material is the sphere's diffuse surface: a texture when one was found,
// otherwise the flat Albedo.
type Material struct {
	Texture *texture.Texture
	Albedo  colors.Color4
}

// At returns the surface color for the sphere-local unit direction d.
func (m Material) At(d vectors.Vec3) colors.Color4 {
	if m.Texture != nil {
		return m.Texture.Sample(d)
	}
	return m.Albedo
}

// Sphere is centred at Center and rotated about the viewing axis by Rotation radians.
type Sphere struct {
	Center   vectors.Vec3
	Radius   float64
	Material Material
	Rotation float64
}

// Light is a directional light shining from Position toward the origin.
type Light struct {
	Position vectors.Vec3
	Color    colors.Color4
}

// Direction returns the unit vector from the origin toward the light.
func (l Light) Direction() vectors.Vec3 {
	return l.Position.Normalize()
}

// Camera is a pinhole camera with a vertical field of view.
type Camera struct {
	Position vectors.Vec3
	Target   vectors.Vec3
	FOVDeg   float64
}

// Scene is everything one render needs. It holds no state beyond the call
// that built it.
type Scene struct {
	Sphere Sphere
	Light  Light
	Camera Camera
}

// Build places the light at (cos a, 0, sin a) * LightDistance for the phase
// angle a. A nil tex selects the flat material.
func Build(angle unit.Angle, tex *texture.Texture, opts options.Options) Scene {
	mat := Material{Albedo: FlatAlbedo}
	if tex != nil {
		mat = Material{Texture: tex, Albedo: colors.White()}
	}

	sphere := Sphere{Radius: 1, Material: mat}
	if rot, ok := opts.Orientation(); ok {
		sphere.Rotation = rot
	}

	return Scene{
		Sphere: sphere,
		Light: Light{
			Position: vectors.Vec3{
				X: angle.Cos() * LightDistance,
				Y: 0,
				Z: angle.Sin() * LightDistance,
			},
			Color: colors.Gray(LightGain(opts.Exposure)),
		},
		Camera: Camera{
			Position: vectors.Vec3{Z: CameraDistance},
			FOVDeg:   FOVDeg,
		},
	}
}

// LightGain clamps exposure into [0, MaxExposure]. NaN yields 0.
func LightGain(exposure float64) float64 {
	if !(exposure > 0) {
		return 0
	}
	if exposure > MaxExposure {
		return MaxExposure
	}
	return exposure
}
