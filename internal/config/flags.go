package config

import (
	"flag"
)

// Flags are the command-line overrides for Config. Only flags that were set
// on the command line are applied.
type Flags struct {
	fs *flag.FlagSet

	Path string

	width, height, size int
	aa                  string
	exposure            float64
	orientation         float64
	textureName         string
	textureDir          string
	logLevel            string
	logFile             string
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "Path to a mooncam.yaml or mooncam.toml config file")
	fs.IntVar(&f.width, "width", 0, "Output width in pixels")
	fs.IntVar(&f.height, "height", 0, "Output height in pixels")
	fs.IntVar(&f.size, "size", 0, "Output width and height in pixels")
	fs.StringVar(&f.aa, "aa", "", "Antialiasing: none, 2x or 4x")
	fs.Float64Var(&f.exposure, "exposure", 0, "Light gain, expected in [0,4]")
	fs.Float64Var(&f.orientation, "orientation", 0, "Rotation about the view axis in degrees")
	fs.StringVar(&f.textureName, "texture", "", "Texture asset name")
	fs.StringVar(&f.textureDir, "texture-dir", "", "Host directory searched for textures")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "Also write logs to this rotated file")
	return f
}

// Apply copies every explicitly set flag into cfg. A nil receiver does nothing.
func (f *Flags) Apply(cfg *Config) {
	if f == nil || f.fs == nil {
		return
	}
	set := map[string]bool{}
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	// -size first so that -width and -height refine it
	if set["size"] {
		cfg.Render.Width, cfg.Render.Height = f.size, f.size
	}
	if set["width"] {
		cfg.Render.Width = f.width
	}
	if set["height"] {
		cfg.Render.Height = f.height
	}
	if set["aa"] {
		cfg.Render.Antialiasing = f.aa
	}
	if set["exposure"] {
		cfg.Render.Exposure = f.exposure
	}
	if set["orientation"] {
		cfg.Render.Orientation = f.orientation
	}
	if set["texture"] {
		cfg.Texture.Name = f.textureName
	}
	if set["texture-dir"] {
		cfg.Texture.HostDir = f.textureDir
	}
	if set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}
	if set["log-file"] {
		cfg.Logging.File = f.logFile
	}
}
