package texture

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/exp/mmap"

	"github.com/echoflaresat/mooncam/assets"
)

// Extensions lists the file extensions tried by a named lookup, in order.
var Extensions = []string{"png", "jpg", "jpeg", "tif", "tiff", "bmp", "webp"}

// Resolver turns an asset name into a texture, or nil when none is available.
type Resolver interface {
	Resolve(name string) *Texture
}

// Source is one place a texture may come from.
type Source interface {
	Load(name string) (*Texture, error)
	String() string
}

// Provider tries its sources in order and returns the first texture that decodes.
// A missing or corrupt asset is an expected outcome, not an error.
type Provider struct {
	sources []Source
	log     *zap.Logger
}

// NewProvider returns a provider over sources. A nil logger discards output.
func NewProvider(log *zap.Logger, sources ...Source) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{sources: sources, log: log}
}

// DefaultProvider searches the embedded module assets and hostDir:
// module resource, host resource, named lookup in module resources,
// named lookup in host resources. An empty hostDir means the directory
// holding the running executable.
func DefaultProvider(hostDir string, log *zap.Logger) *Provider {
	if hostDir == "" {
		hostDir = executableDir()
	}
	var moduleFS fs.FS = assets.FS
	if sub, err := fs.Sub(assets.FS, assets.TextureDir); err == nil {
		moduleFS = sub
	}
	return NewProvider(log,
		FSSource("module", moduleFS),
		HostSource(hostDir),
		NamedFSSource("module", moduleFS),
		NamedHostSource(hostDir),
	)
}

// Resolve returns the first texture found for name, or nil.
func (p *Provider) Resolve(name string) *Texture {
	for _, src := range p.sources {
		tex, err := load(src, name)
		if err == nil {
			p.log.Debug("texture resolved", zap.String("name", name), zap.Stringer("source", src))
			return tex
		}
		if errors.Is(err, ErrNotFound) {
			p.log.Debug("texture not in source", zap.String("name", name), zap.Stringer("source", src))
		} else {
			p.log.Debug("texture source failed", zap.String("name", name), zap.Stringer("source", src), zap.Error(err))
		}
	}
	return nil
}

// load shields the provider from decoders that panic on malformed input.
func load(src Source, name string) (tex *Texture, err error) {
	defer func() {
		if r := recover(); r != nil {
			tex, err = nil, fmt.Errorf("%s: panic while loading %q: %v", src, name, r)
		}
	}()
	return src.Load(name)
}

// --- module resources ---

type fsSource struct {
	label string
	fsys  fs.FS
}

// FSSource loads name as an exact path inside fsys.
func FSSource(label string, fsys fs.FS) Source {
	return fsSource{label: label, fsys: fsys}
}

func (s fsSource) String() string { return s.label + " resource" }

func (s fsSource) Load(name string) (*Texture, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return Decode(bytes.NewReader(data), int64(len(data)))
}

// --- host application resources ---

type hostSource struct {
	dir string
}

// HostSource loads name as a file relative to dir, memory-mapped.
func HostSource(dir string) Source {
	return hostSource{dir: dir}
}

func (s hostSource) String() string { return "host resource " + s.dir }

func (s hostSource) Load(name string) (*Texture, error) {
	if s.dir == "" || !fs.ValidPath(name) {
		return nil, ErrNotFound
	}
	return loadFile(filepath.Join(s.dir, filepath.FromSlash(name)))
}

func loadFile(p string) (*Texture, error) {
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	reader, err := mmap.Open(p)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return Decode(reader, int64(reader.Len()))
}

// --- named lookups ---

type namedSource struct {
	label string
	fsys  fs.FS
	open  func(match string) (*Texture, error)
}

// NamedFSSource finds any file in fsys whose stem matches the asset name,
// in any subdirectory and with any of Extensions.
func NamedFSSource(label string, fsys fs.FS) Source {
	return namedSource{
		label: label,
		fsys:  fsys,
		open:  FSSource(label, fsys).Load,
	}
}

// NamedHostSource is NamedFSSource over the host directory dir.
func NamedHostSource(dir string) Source {
	if dir == "" {
		return namedSource{label: "host"}
	}
	return namedSource{
		label: "host",
		fsys:  os.DirFS(dir),
		open:  HostSource(dir).Load,
	}
}

func (s namedSource) String() string { return "named " + s.label + " lookup" }

func (s namedSource) Load(name string) (*Texture, error) {
	if s.fsys == nil {
		return nil, ErrNotFound
	}
	stem := Stem(name)
	if stem == "" {
		return nil, ErrNotFound
	}
	pattern := "**/" + escapeMeta(stem) + ".{" + strings.Join(Extensions, ",") + "}"
	matches, err := doublestar.Glob(s.fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	var errs []error
	for _, m := range matches {
		tex, err := s.open(m)
		if err == nil {
			return tex, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", m, err))
	}
	if len(errs) == 0 {
		return nil, ErrNotFound
	}
	return nil, errors.Join(errs...)
}

// Stem returns the base name of an asset without its extension.
func Stem(name string) string {
	base := path.Base(filepath.ToSlash(name))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}
