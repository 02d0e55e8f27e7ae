package config

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/mooncam/options"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Render.Width != 512 || cfg.Render.Height != 512 {
		t.Errorf("size = %v", cfg.Size())
	}
	if cfg.Render.Exposure != 1.0 {
		t.Errorf("exposure = %v", cfg.Render.Exposure)
	}
	if cfg.Texture.Name != "moon.png" {
		t.Errorf("texture name = %q", cfg.Texture.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"mooncam.yaml": `
render:
  width: 320
  height: 200
  antialiasing: 2x
  exposure: 2.5
texture:
  name: lroc.tif
  host_dir: /srv/textures
logging:
  level: debug
`,
		"mooncam.toml": `
[render]
width = 320
height = 200
antialiasing = "2x"
exposure = 2.5

[texture]
name = "lroc.tif"
host_dir = "/srv/textures"

[logging]
level = "debug"
`,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			if err := LoadFile(cfg, path); err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if cfg.Size() != (options.Size{Width: 320, Height: 200}) {
				t.Errorf("size = %v", cfg.Size())
			}
			if cfg.Render.Antialiasing != "2x" || cfg.Render.Exposure != 2.5 {
				t.Errorf("render = %+v", cfg.Render)
			}
			if cfg.Texture.Name != "lroc.tif" || cfg.Texture.HostDir != "/srv/textures" {
				t.Errorf("texture = %+v", cfg.Texture)
			}
			// untouched keys keep their defaults
			if cfg.Texture.CacheSize != 4 {
				t.Errorf("cache size = %d", cfg.Texture.CacheSize)
			}
			if cfg.Logging.Level != "debug" {
				t.Errorf("level = %q", cfg.Logging.Level)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := LoadFile(Default(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	ini := filepath.Join(dir, "mooncam.ini")
	if err := os.WriteFile(ini, []byte("width=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadFile(Default(), ini); err == nil {
		t.Error("unknown extension should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("render: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadFile(Default(), bad); err == nil {
		t.Error("invalid yaml should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"antialiasing", func(c *Config) { c.Render.Antialiasing = "16x" }},
		{"exposure", func(c *Config) { c.Render.Exposure = math.Inf(1) }},
		{"texture", func(c *Config) { c.Texture.Name = "" }},
		{"level", func(c *Config) { c.Logging.Level = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Orientation = 90
	cfg.Render.Exposure = 6 // passed through; clamped later by the scene
	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Antialiasing != options.X4 || opts.Exposure != 6 {
		t.Errorf("opts = %+v", opts)
	}
	rot, ok := opts.Orientation()
	if !ok || math.Abs(rot-math.Pi/2) > 1e-12 {
		t.Errorf("orientation = %v, %v", rot, ok)
	}

	cfg.Render.Orientation = 0
	opts, _ = cfg.Options()
	if opts.OrientationCorrection != nil {
		t.Error("zero orientation should leave the correction unset")
	}
}

func TestApplyFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-size", "256", "-height", "100", "-aa", "none", "-log-level", "warn", "-texture-dir", "/tmp/tex"}); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Render.Exposure = 3
	flags.Apply(cfg)

	if cfg.Size() != (options.Size{Width: 256, Height: 100}) {
		t.Errorf("size = %v", cfg.Size())
	}
	if cfg.Render.Antialiasing != "none" || cfg.Logging.Level != "warn" || cfg.Texture.HostDir != "/tmp/tex" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Render.Exposure != 3 {
		t.Errorf("unset flag overrode exposure: %v", cfg.Render.Exposure)
	}

	var none *Flags
	none.Apply(cfg) // must not panic
}

func TestLoadPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mooncam.yaml")
	content := "render:\n  width: 300\n  height: 300\n  exposure: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-width", "640"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(flags.Path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("flag should win: width = %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 300 || cfg.Render.Exposure != 2 {
		t.Errorf("file should win over defaults: %+v", cfg.Render)
	}
	if cfg.Render.Antialiasing != "4x" {
		t.Errorf("default should survive: %q", cfg.Render.Antialiasing)
	}
}

func TestLoadSearchesStandardLocations(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load without any file: %v", err)
	}
	if cfg.Render.Width != Default().Render.Width {
		t.Errorf("width = %d", cfg.Render.Width)
	}

	if err := os.WriteFile(filepath.Join(work, "mooncam.toml"), []byte("[render]\nwidth = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Width != 99 {
		t.Errorf("width = %d, want the value from ./mooncam.toml", cfg.Render.Width)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		path := filepath.Join(t.TempDir(), name)
		cfg := Default()
		cfg.Render.Width = 123
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("%s: SaveTo: %v", name, err)
		}
		got := Default()
		if err := LoadFile(got, path); err != nil {
			t.Fatalf("%s: LoadFile: %v", name, err)
		}
		if *got != *cfg {
			t.Errorf("%s: got %+v, want %+v", name, got, cfg)
		}
	}
	if err := Default().SaveTo(filepath.Join(t.TempDir(), "out.json")); err == nil {
		t.Error("unknown extension should fail")
	}
}
