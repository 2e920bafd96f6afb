// Package sprite is the renderer side of the game: glyph-art textures loaded
// from files, sprite handles that carry position and size, and the component
// entities use to own a sprite.
package sprite

import (
	"errors"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

var (
	// ErrTextureNotFound is returned when no file exists at the texture path.
	ErrTextureNotFound = errors.New("sprite: texture not found")

	// ErrInvalidTexture is returned when a texture file cannot be decoded.
	ErrInvalidTexture = errors.New("sprite: invalid texture")
)

// Texture is decoded glyph art. Textures are shared between sprites and are
// never mutated after loading.
type Texture struct {
	Name  string
	Color core.Color
	rows  [][]rune
	w, h  int
}

// Width returns the texture width in glyphs.
func (t *Texture) Width() int {
	return t.w
}

// Height returns the texture height in glyphs.
func (t *Texture) Height() int {
	return t.h
}

// Glyph returns the rune at (col, row), or a space outside the art.
func (t *Texture) Glyph(col, row int) rune {
	if row < 0 || row >= t.h {
		return ' '
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return ' '
	}
	return r[col]
}

// Sprite is a drawable instance of a texture. Position and size are in
// play-field units and are the source of truth for the owning entity.
type Sprite struct {
	X, Y  float64
	W, H  float64
	Color core.Color

	path     string
	texture  *Texture
	released bool
}

// Path returns the texture path the sprite was created from.
func (s *Sprite) Path() string {
	return s.path
}

// Texture returns the shared texture.
func (s *Sprite) Texture() *Texture {
	return s.texture
}

// BoundingBox derives a box from the sprite's current position and size.
func (s *Sprite) BoundingBox() core.BoundingBox {
	return core.Box(s.X, s.Y, s.W, s.H)
}

// Loader creates and releases sprites. It stands in for the host renderer.
type Loader interface {
	Load(path string) (*Sprite, error)
	Release(s *Sprite)
}
