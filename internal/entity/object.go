// Package entity holds game objects and the controller that moves them.
package entity

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

// Object is a game entity: an optional sprite, a direction, a speed and a
// visibility flag. The sprite's position and size are the entity's position
// and size; an object without a sprite cannot be drawn or collided.
type Object struct {
	component *sprite.Component
	direction core.Vec2
	speed     float64
	visible   bool
}

// AddSpriteComponent replaces any existing component with a new one loaded
// from path. On failure the object is left without a component.
func (o *Object) AddSpriteComponent(r sprite.Loader, path string) error {
	o.Free()

	c := &sprite.Component{}
	if err := c.Load(r, path); err != nil {
		return err
	}
	o.component = c
	return nil
}

// attach swaps in an already loaded component, releasing the old one.
func (o *Object) attach(c *sprite.Component) {
	o.Free()
	o.component = c
}

// Component returns the sprite component, or nil.
func (o *Object) Component() *sprite.Component {
	return o.component
}

// HasSprite reports whether the object has a loaded sprite.
func (o *Object) HasSprite() bool {
	return !o.component.Empty()
}

// Sprite returns the sprite handle, or nil.
func (o *Object) Sprite() *sprite.Sprite {
	return o.component.Sprite()
}

// BoundingBox returns the live bounding box; false without a sprite.
func (o *Object) BoundingBox() (core.BoundingBox, bool) {
	if o.component == nil {
		return core.BoundingBox{}, false
	}
	return o.component.BoundingBox()
}

// Position returns the top-left corner, or the origin without a sprite.
func (o *Object) Position() core.Vec2 {
	s := o.Sprite()
	if s == nil {
		return core.Vec2{}
	}
	return core.V(s.X, s.Y)
}

// SetPosition moves the sprite. No-op without a sprite.
func (o *Object) SetPosition(x, y float64) {
	if s := o.Sprite(); s != nil {
		s.X, s.Y = x, y
	}
}

// Size returns width and height, or zero without a sprite.
func (o *Object) Size() core.Vec2 {
	s := o.Sprite()
	if s == nil {
		return core.Vec2{}
	}
	return core.V(s.W, s.H)
}

// SetSize resizes the sprite. No-op without a sprite.
func (o *Object) SetSize(w, h float64) {
	if s := o.Sprite(); s != nil {
		s.W, s.H = w, h
	}
}

// Direction returns the current direction.
func (o *Object) Direction() core.Vec2 {
	return o.direction
}

// SetDirection sets the direction as given, without normalising it.
func (o *Object) SetDirection(x, y float64) {
	o.direction = core.V(x, y)
}

// Speed returns the scalar speed in field units per second.
func (o *Object) Speed() float64 {
	return o.speed
}

// SetSpeed sets the scalar speed.
func (o *Object) SetSpeed(v float64) {
	o.speed = v
}

// Visible reports whether the object is shown.
func (o *Object) Visible() bool {
	return o.visible
}

// SetVisible shows or hides the object.
func (o *Object) SetVisible(shown bool) {
	o.visible = shown
}

// Free releases the sprite component. Safe to call repeatedly.
func (o *Object) Free() {
	if o.component == nil {
		return
	}
	o.component.Free()
	o.component = nil
}
