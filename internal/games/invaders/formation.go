package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/entity"
)

// formation is the enemy grid. Ships are stored row-major and move as one
// rigid body with a single shared direction; a hidden ship still moves so
// the grid keeps its shape.
type formation struct {
	ships     []entity.Object
	columns   int
	direction float64 // +1 right, -1 left
	left      float64 // x of column 0
	width     float64 // from column 0's left edge to the last column's right edge
	margin    float64
}

func (g *Game) setupFormation() {
	f := g.cfg.Formation
	g.formation = formation{
		ships:     make([]entity.Object, f.Ships()),
		columns:   f.Columns,
		direction: 1,
		left:      f.OffsetX,
		width:     float64(f.Columns-1)*f.Spacing + f.ShipWidth,
		margin:    f.Margin,
	}

	for i := range g.formation.ships {
		row, col := g.formation.cell(i)
		path := f.RowSprite(row)
		ship := &g.formation.ships[i]
		err := g.ctrl.SetupObject(ship, g.loader, entity.Setup{
			Sprite:   path,
			Position: core.V(f.OffsetX+float64(col)*f.Spacing, f.Margin+float64(row)*entity.RowSpacing),
			Size:     core.V(f.ShipWidth, f.ShipHeight),
			Speed:    f.Speed,
			Visible:  true,
		})
		if err != nil {
			g.log.Warn("ship sprite not set", "index", i, "row", row, "path", path, "err", err)
			ship.SetVisible(false)
			continue
		}
		g.trajectory(g.ctrl, ship, 0, row, false)
	}
}

// cell returns the logical row and column of ship i.
func (f *formation) cell(i int) (row, col int) {
	return i / f.columns, i % f.columns
}

// sweep moves every ship by the same horizontal step, reverses the shared
// direction when the grid reaches a margin, then re-applies the trajectory.
func (f *formation) sweep(c *entity.Controller, traj Trajectory, speed, dt float64) {
	if len(f.ships) == 0 {
		return
	}
	dx := f.direction * speed * dt
	// Keep the grid inside the field even on a long frame.
	if f.left+dx < 0 {
		dx = -f.left
	}
	if right := f.left + f.width; right+dx > c.GameWidth() {
		dx = c.GameWidth() - right
	}
	f.left += dx

	reversed := false
	switch {
	case f.direction > 0 && f.left+f.width > c.GameWidth()-f.margin:
		f.direction = -1
		reversed = true
	case f.direction < 0 && f.left < f.margin:
		f.direction = 1
		reversed = true
	}

	for i := range f.ships {
		ship := &f.ships[i]
		p := ship.Position()
		ship.SetPosition(p.X+dx, p.Y)
		row, _ := f.cell(i)
		traj(c, ship, dt, row, reversed)
	}
}

func (f *formation) visibleCount() int {
	n := 0
	for i := range f.ships {
		if f.ships[i].Visible() {
			n++
		}
	}
	return n
}

func (f *formation) free() {
	for i := range f.ships {
		f.ships[i].Free()
	}
}
