package entity

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

// Trajectory constants. The formation formulas overwrite y every frame from
// the current x and the logical row; they do not integrate velocity.
const (
	Gravity           = 9.18
	RowSpacing        = 70.0
	QuadraticDivisor  = 500.0
	SinAmplitude      = 8.0
	SinPeriodDivisor  = 4.0
	SinVerticalOffset = 8.0
)

// Setup describes the initial state SetupObject applies to an object.
type Setup struct {
	Sprite    string
	Position  core.Vec2
	Direction core.Vec2
	Speed     float64
	Size      core.Vec2
	Visible   bool
}

// Controller moves objects inside a play field. It holds only the field
// size and is otherwise stateless.
type Controller struct {
	gameWidth  float64
	gameHeight float64
}

// NewController creates a controller for a field of the given size.
func NewController(width, height float64) *Controller {
	return &Controller{gameWidth: width, gameHeight: height}
}

// GameWidth returns the field width.
func (c *Controller) GameWidth() float64 {
	return c.gameWidth
}

// GameHeight returns the field height.
func (c *Controller) GameHeight() float64 {
	return c.gameHeight
}

// SetGameWidth updates the field width used for boundary tests.
func (c *Controller) SetGameWidth(w float64) {
	c.gameWidth = w
}

// SetGameHeight updates the field height used for boundary tests.
func (c *Controller) SetGameHeight(h float64) {
	c.gameHeight = h
}

// SetupObject loads the sprite, then applies position, size, direction,
// speed and visibility in that order. The sprite is loaded before anything
// is touched: on error the object is left exactly as it was.
func (c *Controller) SetupObject(obj *Object, r sprite.Loader, s Setup) error {
	comp := &sprite.Component{}
	if err := comp.Load(r, s.Sprite); err != nil {
		return err
	}
	obj.attach(comp)

	obj.SetPosition(s.Position.X, s.Position.Y)
	obj.SetSize(s.Size.X, s.Size.Y)
	obj.SetDirection(s.Direction.X, s.Direction.Y)
	obj.SetSpeed(s.Speed)
	obj.SetVisible(s.Visible)
	return nil
}

// MoveObject advances obj by direction*speed*dt, one axis at a time.
// Motion toward the negative side is applied only while the position is
// above zero; motion toward the positive side only while the far edge is
// short of the field extent. Otherwise that axis stays put for this frame.
// An applied step never carries the object past the field edge.
func (c *Controller) MoveObject(obj *Object, dt float64) {
	s := obj.Sprite()
	if s == nil || dt <= 0 {
		return
	}
	dir := obj.Direction()
	s.X = moveAxis(s.X, s.W, dir.X, obj.Speed(), dt, c.gameWidth)
	s.Y = moveAxis(s.Y, s.H, dir.Y, obj.Speed(), dt, c.gameHeight)
}

func moveAxis(pos, size, dir, speed, dt, extent float64) float64 {
	switch {
	case dir < 0 && pos > 0:
		return math.Max(0, pos+dir*speed*dt)
	case dir > 0 && pos+size < extent:
		return math.Min(extent-size, pos+dir*speed*dt)
	default:
		return pos
	}
}

// Advance moves obj along its direction with no boundary check.
// Projectiles use it so they can leave the field and be recycled.
func (c *Controller) Advance(obj *Object, dt float64) {
	if !obj.HasSprite() {
		return
	}
	p := obj.Position().Add(obj.Direction().Scale(obj.Speed() * dt))
	obj.SetPosition(p.X, p.Y)
}

// ApplyGravity pulls obj down by a fixed acceleration times dt.
func (c *Controller) ApplyGravity(obj *Object, dt float64) {
	if s := obj.Sprite(); s != nil {
		s.Y += Gravity * dt
	}
}

// ApplyQuadraticTrajectory sets y on a parabola centred on the field:
// ((x - width/2)^2)/500 + row*70.
func (c *Controller) ApplyQuadraticTrajectory(obj *Object, _ float64, row int) {
	s := obj.Sprite()
	if s == nil {
		return
	}
	dx := s.X - c.gameWidth/2
	s.Y = dx*dx/QuadraticDivisor + float64(row)*RowSpacing
}

// ApplySinTrajectory sets y on a sine wave: 8*sin(x/4) + 8 + row*70.
func (c *Controller) ApplySinTrajectory(obj *Object, _ float64, row int) {
	s := obj.Sprite()
	if s == nil {
		return
	}
	s.Y = SinAmplitude*math.Sin(s.X/SinPeriodDivisor) + SinVerticalOffset + float64(row)*RowSpacing
}
