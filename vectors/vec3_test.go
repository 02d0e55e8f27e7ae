package vectors

import (
	"math"
	"testing"
)

func near(a, b Vec3) bool {
	const eps = 1e-12
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestNormalize(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	got := Vec3{X: 3, Y: 0, Z: 4}.Normalize()
	if !near(got, Vec3{X: 0.6, Y: 0, Z: 0.8}) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	tests := []struct {
		name    string
		v, axis Vec3
		theta   float64
		want    Vec3
	}{
		{"x about z", Vec3{X: 1}, Vec3{Z: 1}, math.Pi / 2, Vec3{Y: 1}},
		{"y about z backwards", Vec3{Y: 1}, Vec3{Z: 1}, -math.Pi / 2, Vec3{X: 1}},
		{"y about x", Vec3{Y: 1}, Vec3{X: 1}, math.Pi / 2, Vec3{Z: 1}},
		{"along axis", Vec3{Z: 2}, Vec3{Z: 1}, 1.3, Vec3{Z: 2}},
		{"full turn", Vec3{X: 0.3, Y: -0.7, Z: 0.2}, Vec3{Y: 1}, 2 * math.Pi, Vec3{X: 0.3, Y: -0.7, Z: 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Rotate(tt.axis, tt.theta); !near(got, tt.want) {
				t.Errorf("Rotate = %v, want %v", got, tt.want)
			}
		})
	}
}
