// Package moon renders the Moon's illuminated phase to PNG.
//
// Rendering goes through a 3-D backend and falls back to a flat white disk
// whenever the backend is missing or fails, so every call returns a valid,
// non-empty PNG of the requested size.
package moon

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/echoflaresat/mooncam/codec"
	"github.com/echoflaresat/mooncam/flat"
	"github.com/echoflaresat/mooncam/lunar"
	"github.com/echoflaresat/mooncam/options"
	"github.com/echoflaresat/mooncam/render"
	"github.com/echoflaresat/mooncam/scene"
	"github.com/echoflaresat/mooncam/texture"
)

// DefaultTextureName is the asset looked up for the lunar surface.
const DefaultTextureName = "moon.png"

// Coordinate is an observer position in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DefaultLocation stands in for a missing observer location (central London).
var DefaultLocation = Coordinate{Latitude: 51.5074, Longitude: -0.1278}

// Renderer renders phases through a backend. It is safe for concurrent use
// when its backend and texture resolver are.
type Renderer struct {
	backend     render.Backend
	textures    texture.Resolver
	textureName string
	log         *zap.Logger
	observe     func(State)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackend replaces the default backend.
func WithBackend(b render.Backend) Option {
	return func(r *Renderer) { r.backend = b }
}

// WithTextures replaces the default texture provider. A nil resolver turns
// texture lookup off and every render uses the flat material.
func WithTextures(res texture.Resolver) Option {
	return func(r *Renderer) {
		if res == nil {
			res = noTextures{}
		}
		r.textures = res
	}
}

// WithTextureName changes the asset name looked up for the surface.
func WithTextureName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.textureName = name
		}
	}
}

// WithLogger sets the logger for state transitions and recovered failures.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(State)) Option {
	return func(r *Renderer) { r.observe = fn }
}

// New returns a Renderer using render.Default and texture.DefaultProvider
// unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		textureName: DefaultTextureName,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.backend == nil {
		r.backend = render.Default()
	}
	if r.textures == nil {
		r.textures = texture.DefaultProvider("", r.log.Named("texture"))
	}
	return r
}

// RenderPhase renders phase, clamped to [0,1], at size. Non-positive
// dimensions are floored to one pixel. It always returns PNG bytes.
func (r *Renderer) RenderPhase(phase float64, size options.Size, opts options.Options) []byte {
	size = size.Normalize()
	p := lunar.Clamp(phase)
	log := r.log.With(zap.Float64("phase", p), zap.Stringer("size", size))
	r.enter(log, Start)
	r.enter(log, PhaseResolved)

	img, err := r.rasterize(p, size, opts, log)
	if err != nil {
		if errors.Is(err, render.ErrUnavailable) {
			log.Debug("3-D backend unavailable", zap.String("backend", r.backend.Name()))
		} else {
			log.Warn("3-D render failed", zap.String("backend", r.backend.Name()), zap.Error(err))
		}
		r.enter(log, RasterizationUnavailable)
		data := r.fallback(size, log)
		r.enter(log, FallbackRendered)
		r.enter(log, Encoded)
		r.enter(log, Done)
		return data
	}
	r.enter(log, Rasterized)

	data, err := codec.Encode(img)
	if err != nil {
		log.Error("encode failed, using flat image", zap.Error(err))
		data = r.fallback(size, log)
	}
	r.enter(log, Encoded)
	r.enter(log, Done)
	return data
}

// RenderAt renders the phase at t with default options. loc is accepted for
// a future topocentric correction and has no effect on the image; nil means
// DefaultLocation.
func (r *Renderer) RenderAt(t time.Time, loc *Coordinate, size options.Size) []byte {
	return r.RenderAtWith(t, loc, size, options.Default())
}

// RenderAtWith is RenderAt with explicit render options.
func (r *Renderer) RenderAtWith(t time.Time, loc *Coordinate, size options.Size, opts options.Options) []byte {
	if loc == nil {
		l := DefaultLocation
		loc = &l
	}
	phase := lunar.FractionalPhase(t)
	r.log.Debug("phase from time",
		zap.Time("time", t),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude),
		zap.Float64("phase", phase),
	)
	return r.RenderPhase(phase, size, opts)
}

// fallback encodes the flat disk at size. A size too large to allocate
// degrades to a single pixel.
func (r *Renderer) fallback(size options.Size, log *zap.Logger) (data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("flat render failed, using 1x1 image", zap.Any("panic", rec))
			data = codec.EncodeFlat(options.Square(1))
		}
	}()
	data, err := codec.Encode(flat.Render(size))
	if err != nil {
		log.Error("flat encode failed, using 1x1 image", zap.Error(err))
		return codec.EncodeFlat(options.Square(1))
	}
	return data
}

// rasterize runs the 3-D path. Any error means the caller must fall back.
func (r *Renderer) rasterize(phase float64, size options.Size, opts options.Options, log *zap.Logger) (img *image.NRGBA, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, fmt.Errorf("%w: panic: %v", render.ErrRasterize, rec)
		}
	}()

	tex := r.resolveTexture(log)
	s := scene.Build(lunar.PhaseAngle(phase), tex, opts)
	r.enter(log, SceneBuilt)

	img, err = r.backend.Rasterize(s, size, opts.Antialiasing)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: backend returned no image", render.ErrRasterize)
	}
	if b := img.Bounds(); b.Dx() != size.Width || b.Dy() != size.Height {
		return nil, fmt.Errorf("%w: backend returned %dx%d for %v", render.ErrRasterize, b.Dx(), b.Dy(), size)
	}
	return img, nil
}

func (r *Renderer) resolveTexture(log *zap.Logger) (tex *texture.Texture) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Debug("texture lookup panicked", zap.Any("panic", rec))
			tex = nil
		}
	}()
	tex = r.textures.Resolve(r.textureName)
	if tex == nil {
		log.Debug("no texture, using flat material", zap.String("name", r.textureName))
	}
	return tex
}

func (r *Renderer) enter(log *zap.Logger, s State) {
	log.Debug("render state", zap.Stringer("state", s))
	if r.observe == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Warn("state observer panicked", zap.Stringer("state", s), zap.Any("panic", rec))
		}
	}()
	r.observe(s)
}

type noTextures struct{}

func (noTextures) Resolve(string) *texture.Texture { return nil }

var defaultRenderer = sync.OnceValue(func() *Renderer { return New() })

// RenderPhase renders with a shared default Renderer.
func RenderPhase(phase float64, size options.Size, opts options.Options) []byte {
	return defaultRenderer().RenderPhase(phase, size, opts)
}

// RenderAt renders with a shared default Renderer.
func RenderAt(t time.Time, loc *Coordinate, size options.Size) []byte {
	return defaultRenderer().RenderAt(t, loc, size)
}
