package sprite

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

//go:embed assets
var assets embed.FS

// DefaultFS returns the embedded sprite files, rooted so that paths look
// like "images/player.yaml".
func DefaultFS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err) // embedded directory is always present
	}
	return sub
}

// textureFile is the on-disk format of a texture.
type textureFile struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Art   []string `yaml:"art"`
}

type atlasEntry struct {
	texture *Texture
	refs    int
}

// Atlas loads textures from a file system and hands out sprites bound to
// them. Textures are cached and reference counted; a texture is dropped when
// its last sprite is released. Safe for concurrent use.
type Atlas struct {
	fsys fs.FS

	mu      sync.Mutex
	entries map[string]*atlasEntry
}

// NewAtlas creates an atlas reading texture files from fsys.
func NewAtlas(fsys fs.FS) *Atlas {
	return &Atlas{
		fsys:    fsys,
		entries: make(map[string]*atlasEntry),
	}
}

// Load creates a new sprite for the texture at p.
// The sprite starts at the origin with the texture's natural size.
func (a *Atlas) Load(p string) (*Sprite, error) {
	key := cleanPath(p)

	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.entries[key]
	if !ok {
		tex, err := a.decode(key)
		if err != nil {
			return nil, err
		}
		entry = &atlasEntry{texture: tex}
		a.entries[key] = entry
	}
	entry.refs++

	return &Sprite{
		W:       float64(entry.texture.w),
		H:       float64(entry.texture.h),
		Color:   entry.texture.Color,
		path:    key,
		texture: entry.texture,
	}, nil
}

// Release returns a sprite to the atlas. Releasing the same sprite twice,
// or a nil sprite, does nothing.
func (a *Atlas) Release(s *Sprite) {
	if s == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if s.released {
		return
	}
	s.released = true

	entry, ok := a.entries[s.path]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(a.entries, s.path)
	}
}

// Refs returns the number of live sprites using the texture at p.
func (a *Atlas) Refs(p string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if entry, ok := a.entries[cleanPath(p)]; ok {
		return entry.refs
	}
	return 0
}

// Cached returns the number of textures currently held.
func (a *Atlas) Cached() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *Atlas) decode(key string) (*Texture, error) {
	data, err := fs.ReadFile(a.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTextureNotFound, key)
		}
		return nil, fmt.Errorf("sprite: cannot read %s: %w", key, err)
	}
	return ParseTexture(data)
}

// ParseTexture decodes a texture file.
func ParseTexture(data []byte) (*Texture, error) {
	var f textureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTexture, err)
	}
	if len(f.Art) == 0 {
		return nil, fmt.Errorf("%w: %q has no art", ErrInvalidTexture, f.Name)
	}

	color, ok := core.ParseColor(f.Color)
	if !ok {
		return nil, fmt.Errorf("%w: %q has unknown color %q", ErrInvalidTexture, f.Name, f.Color)
	}

	tex := &Texture{
		Name:  f.Name,
		Color: color,
		rows:  make([][]rune, len(f.Art)),
		h:     len(f.Art),
	}
	for i, line := range f.Art {
		tex.rows[i] = []rune(line)
		tex.w = core.Max(tex.w, len(tex.rows[i]))
	}
	if tex.w == 0 {
		return nil, fmt.Errorf("%w: %q has empty rows", ErrInvalidTexture, f.Name)
	}
	return tex, nil
}

func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
}

// Overlay is a file system that serves each file from the first layer that
// has it. Used to let a sprite directory on disk override embedded sprites.
type Overlay []fs.FS

// Open implements fs.FS.
func (o Overlay) Open(name string) (fs.File, error) {
	for _, layer := range o {
		if layer == nil {
			continue
		}
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
