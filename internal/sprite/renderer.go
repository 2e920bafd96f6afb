package sprite

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Renderer draws play-field content into a screen buffer, scaling field
// units to terminal cells.
type Renderer struct {
	FieldW float64
	FieldH float64
}

// NewRenderer creates a renderer for a play field of the given size.
func NewRenderer(fieldW, fieldH float64) Renderer {
	return Renderer{FieldW: fieldW, FieldH: fieldH}
}

func (r Renderer) scale(dst *core.Screen) (float64, float64) {
	return r.scaleFor(dst.Width(), dst.Height())
}

func (r Renderer) scaleFor(w, h int) (float64, float64) {
	if r.FieldW <= 0 || r.FieldH <= 0 || w <= 0 || h <= 0 {
		return 1, 1
	}
	return float64(w) / r.FieldW, float64(h) / r.FieldH
}

// CellAt maps a field position to a screen cell.
func (r Renderer) CellAt(dst *core.Screen, x, y float64) (int, int) {
	sx, sy := r.scale(dst)
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}

// FieldAt maps a cell of a screen sized w x h to the field position of
// the cell's top-left corner.
func (r Renderer) FieldAt(w, h, cx, cy int) (float64, float64) {
	sx, sy := r.scaleFor(w, h)
	return float64(cx) / sx, float64(cy) / sy
}

// Draw renders a sprite. The texture is sampled at cell centres into the
// cells the sprite covers; spaces in the art are transparent. Every sprite
// covers at least one cell so small projectiles stay visible.
func (r Renderer) Draw(dst *core.Screen, s *Sprite) {
	if s == nil || s.texture == nil {
		return
	}
	sx, sy := r.scale(dst)

	x0, y0 := r.CellAt(dst, s.X, s.Y)
	w := core.Max(1, int(math.Round(s.W*sx)))
	h := core.Max(1, int(math.Round(s.H*sy)))

	tex := s.texture
	for cy := 0; cy < h; cy++ {
		row := (2*cy + 1) * tex.h / (2 * h)
		for cx := 0; cx < w; cx++ {
			col := (2*cx + 1) * tex.w / (2 * w)
			g := tex.Glyph(col, row)
			if g == ' ' {
				continue
			}
			dst.SetColored(x0+cx, y0+cy, g, s.Color)
		}
	}
}
