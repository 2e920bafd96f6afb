package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/entity"
)

// pool is a fixed set of reusable shots. A hidden slot is free.
// Slot indices are stable for the lifetime of a run.
type pool struct {
	slots []entity.Object
}

func newPool(size int) pool {
	return pool{slots: make([]entity.Object, size)}
}

// fire activates the first hidden slot that has a sprite, centred
// horizontally on x with its top at y. It returns the slot index, or -1
// when every usable slot is in flight.
func (p *pool) fire(x, y float64) int {
	for i := range p.slots {
		if p.slots[i].Visible() || !p.slots[i].HasSprite() {
			continue
		}
		p.place(i, x, y)
		return i
	}
	return -1
}

// place activates slot i centred on x with its top at y.
func (p *pool) place(i int, x, y float64) {
	shot := &p.slots[i]
	size := shot.Size()
	shot.SetPosition(x-size.X/2, y)
	shot.SetVisible(true)
}

func (p *pool) advance(c *entity.Controller, dt float64) {
	for i := range p.slots {
		if p.slots[i].Visible() {
			c.Advance(&p.slots[i], dt)
		}
	}
}

func (p *pool) visibleCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Visible() {
			n++
		}
	}
	return n
}

// box returns the box of a visible slot with a sprite.
func (p *pool) box(i int) (core.BoundingBox, bool) {
	if !p.slots[i].Visible() {
		return core.BoundingBox{}, false
	}
	return p.slots[i].BoundingBox()
}

func (p *pool) free() {
	for i := range p.slots {
		p.slots[i].Free()
	}
}
