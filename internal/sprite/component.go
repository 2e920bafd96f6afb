package sprite

import "github.com/vovakirdan/tui-invaders/internal/core"

// Component owns at most one sprite. The zero value is an empty component.
type Component struct {
	sprite *Sprite
	loader Loader
}

// Load releases any sprite the component holds and asks r for a new one
// bound to the texture at path. On failure the component is left empty.
func (c *Component) Load(r Loader, path string) error {
	c.Free()

	s, err := r.Load(path)
	if err != nil {
		return err
	}
	c.sprite = s
	c.loader = r
	return nil
}

// Sprite returns the owned sprite handle, or nil when empty.
func (c *Component) Sprite() *Sprite {
	if c == nil {
		return nil
	}
	return c.sprite
}

// Empty reports whether the component holds no sprite.
func (c *Component) Empty() bool {
	return c == nil || c.sprite == nil
}

// BoundingBox returns a snapshot of the sprite's current box.
// The second result is false when the component is empty.
func (c *Component) BoundingBox() (core.BoundingBox, bool) {
	if c.Empty() {
		return core.BoundingBox{}, false
	}
	return c.sprite.BoundingBox(), true
}

// Free releases the sprite. Safe to call on an empty component.
func (c *Component) Free() {
	if c == nil || c.sprite == nil {
		return
	}
	c.loader.Release(c.sprite)
	c.sprite = nil
	c.loader = nil
}
