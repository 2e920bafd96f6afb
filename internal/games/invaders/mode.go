package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/entity"
)

// Mode selects how the formation moves vertically while it sweeps.
type Mode int

const (
	ModeArc     Mode = iota // parabolic rows, highest in the middle of the field
	ModeWave                // sinusoidal rows
	ModeClassic             // drop a step on every reversal
	ModeGravity             // slow constant fall
)

// Modes returns every mode in registration order.
func Modes() []Mode {
	return []Mode{ModeArc, ModeWave, ModeClassic, ModeGravity}
}

// ID returns the registry identifier of the mode.
func (m Mode) ID() string {
	switch m {
	case ModeWave:
		return "invaders_wave"
	case ModeClassic:
		return "invaders_classic"
	case ModeGravity:
		return "invaders_gravity"
	default:
		return "invaders"
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeWave:
		return "Invaders (Wave)"
	case ModeClassic:
		return "Invaders (Classic)"
	case ModeGravity:
		return "Invaders (Gravity)"
	default:
		return "Invaders"
	}
}

// Trajectory updates a ship's vertical position after the horizontal
// sweep. reversed is true on the frame the formation changed direction.
type Trajectory func(c *entity.Controller, ship *entity.Object, dt float64, row int, reversed bool)

func (m Mode) trajectory(f config.FormationConfig) Trajectory {
	switch m {
	case ModeWave:
		return func(c *entity.Controller, ship *entity.Object, dt float64, row int, _ bool) {
			c.ApplySinTrajectory(ship, dt, row)
		}
	case ModeClassic:
		step := f.StepDown
		return func(_ *entity.Controller, ship *entity.Object, _ float64, _ int, reversed bool) {
			if reversed {
				p := ship.Position()
				ship.SetPosition(p.X, p.Y+step)
			}
		}
	case ModeGravity:
		return func(c *entity.Controller, ship *entity.Object, dt float64, _ int, _ bool) {
			c.ApplyGravity(ship, dt)
		}
	default:
		return func(c *entity.Controller, ship *entity.Object, dt float64, row int, _ bool) {
			c.ApplyQuadraticTrajectory(ship, dt, row)
		}
	}
}
