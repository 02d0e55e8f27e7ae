package options

import "testing"

func TestAntialiasingSamples(t *testing.T) {
	tests := []struct {
		aa      Antialiasing
		samples int
		name    string
	}{
		{None, 1, "none"},
		{X2, 2, "2x"},
		{X4, 4, "4x"},
		{Antialiasing(42), 1, "none"},
	}
	for _, tt := range tests {
		if got := tt.aa.Samples(); got != tt.samples {
			t.Errorf("%v.Samples() = %d, want %d", tt.aa, got, tt.samples)
		}
		if got := tt.aa.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestParseAntialiasing(t *testing.T) {
	for in, want := range map[string]Antialiasing{"": None, "off": None, "2x": X2, "4": X4, " 4X ": X4} {
		got, err := ParseAntialiasing(in)
		if err != nil {
			t.Fatalf("ParseAntialiasing(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseAntialiasing(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseAntialiasing("8x"); err == nil {
		t.Error("expected error for 8x")
	}
}

func TestSizeNormalize(t *testing.T) {
	tests := []struct {
		in, want Size
	}{
		{Size{128, 64}, Size{128, 64}},
		{Size{0, 0}, Size{1, 1}},
		{Size{-5, 10}, Size{1, 10}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%v.Normalize() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrientation(t *testing.T) {
	if _, ok := Default().Orientation(); ok {
		t.Error("default options should not rotate")
	}
	zero := 0.0
	if _, ok := (Options{OrientationCorrection: &zero}).Orientation(); ok {
		t.Error("zero correction should not rotate")
	}
	quarter := 1.5
	got, ok := (Options{OrientationCorrection: &quarter}).Orientation()
	if !ok || got != 1.5 {
		t.Errorf("Orientation() = %v, %v", got, ok)
	}
}
