package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// HandleKey applies a key event. Movement keys set the player direction on
// press or repeat and clear it on release; the last key wins.
func (g *Game) HandleKey(ev core.KeyEvent) {
	if ev.Key == core.KeyEscape {
		g.exit = true
		return
	}
	if g.ctrl == nil {
		return
	}

	if g.inMenu {
		if ev.Key == core.KeyEnter && ev.Action == core.KeyPressed {
			g.inMenu = false
			g.log.Debug("game started", "mode", g.ID())
		}
		return
	}

	if g.outcome != playing {
		if ev.Key == core.KeyR && ev.Action == core.KeyPressed {
			g.restart()
		}
		return
	}

	switch ev.Key {
	case core.KeyP:
		if ev.Action == core.KeyPressed {
			g.paused = !g.paused
		}
	case core.KeyA, core.KeyLeft:
		g.steer(ev.Action, -1)
	case core.KeyD, core.KeyRight:
		g.steer(ev.Action, 1)
	case core.KeySpace:
		if ev.Action == core.KeyPressed && !g.paused {
			g.fire()
		}
	}
}

func (g *Game) steer(action core.KeyAction, dx float64) {
	if action == core.KeyReleased {
		g.player.SetDirection(0, 0)
		return
	}
	g.player.SetDirection(dx, 0)
}

// fire launches the first free player shot from the player's muzzle:
// centred on the ship, a fixed gap above its top edge.
func (g *Game) fire() int {
	box, ok := g.player.BoundingBox()
	if !ok {
		return -1
	}
	cx, _ := box.Center()
	return g.playerShots.fire(cx, box.Y-g.cfg.Shots.MuzzleGap)
}

// restart begins a new run straight away, skipping the menu.
func (g *Game) restart() {
	rt := g.runtime
	if rt.Seed != 0 {
		rt.Seed = g.rng.Int63()
	}
	if err := g.Reset(rt); err != nil {
		g.log.Error("restart failed", "err", err)
		g.exit = true
		return
	}
	g.inMenu = false
}

// HandleClick logs the clicked cell and the field position under it.
func (g *Game) HandleClick(ev core.ClickEvent) {
	if g.ctrl == nil {
		return
	}
	x, y := g.view.FieldAt(g.screenW, g.screenH, ev.X, ev.Y)
	g.log.Debug("click", "col", ev.X, "row", ev.Y, "x", x, "y", y)
}
