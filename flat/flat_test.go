package flat

import (
	"image/color"
	"testing"

	"github.com/echoflaresat/mooncam/options"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestRenderSquare(t *testing.T) {
	for _, n := range []int{16, 64, 128, 301} {
		img := Render(options.Square(n))
		if b := img.Bounds(); b.Dx() != n || b.Dy() != n {
			t.Fatalf("%d: got %v", n, b)
		}
		if c := img.NRGBAAt(n/2, n/2); c != white {
			t.Errorf("%d: centre = %v, want white", n, c)
		}
		for _, p := range [][2]int{{0, 0}, {n - 1, 0}, {0, n - 1}, {n - 1, n - 1}, {1, 1}} {
			if c := img.NRGBAAt(p[0], p[1]); c != black {
				t.Errorf("%d: corner %v = %v, want black", n, p, c)
			}
		}
	}
}

func TestRenderInset(t *testing.T) {
	// r=100, inset=15: a disk of radius 35 centred at (50, 50)
	img := Render(options.Size{Width: 200, Height: 100})
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{50, 50, white},
		{50, 16, white},
		{83, 50, white},
		{50, 13, black},
		{87, 50, black},
		{150, 50, black},
		{100, 50, black},
	}
	for _, tt := range tests {
		if c := img.NRGBAAt(tt.x, tt.y); c != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, c, tt.want)
		}
	}
}

func TestRenderDegenerate(t *testing.T) {
	for _, s := range []options.Size{{}, {Width: 1, Height: 1}, {Width: -4, Height: 3}} {
		img := Render(s)
		want := s.Normalize()
		if b := img.Bounds(); b.Dx() != want.Width || b.Dy() != want.Height {
			t.Errorf("%v: got %v", s, b)
		}
		if img.NRGBAAt(0, 0).A != 255 {
			t.Errorf("%v: canvas should be opaque", s)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := Render(options.Size{Width: 37, Height: 53})
	b := Render(options.Size{Width: 37, Height: 53})
	if string(a.Pix) != string(b.Pix) {
		t.Error("two renders of the same size differ")
	}
}
