package invaders

// shotCollision resolves player shots against ships, recycles shots that
// left the field, and ends the run when an enemy shot hits the player.
func (g *Game) shotCollision() {
	for i := range g.playerShots.slots {
		shot, ok := g.playerShots.box(i)
		if !ok {
			continue
		}
		if shot.Y < 0 {
			g.playerShots.slots[i].SetVisible(false)
			continue
		}
		for j := range g.formation.ships {
			ship := &g.formation.ships[j]
			if !ship.Visible() {
				continue
			}
			box, hasBox := ship.BoundingBox()
			if !hasBox || !shot.IsInside(box) {
				continue
			}
			ship.SetVisible(false)
			g.playerShots.slots[i].SetVisible(false)
			g.score += g.cfg.Scoring.PointsPerShip
			g.log.Debug("ship destroyed", "ship", j, "shot", i, "score", g.score)
			break
		}
	}

	player, hasPlayer := g.player.BoundingBox()
	for i := range g.enemyShots.slots {
		shot, ok := g.enemyShots.box(i)
		if !ok {
			continue
		}
		if shot.Y > g.cfg.Field.Height {
			g.enemyShots.slots[i].SetVisible(false)
			continue
		}
		if hasPlayer && shot.IsInside(player) {
			g.enemyShots.slots[i].SetVisible(false)
			g.outcome = lost
		}
	}
}

// enemyFire gives every enemy shot slot one chance per frame: a random
// ship is picked, and if it is alive, the slot is free and the roll
// succeeds, the slot is launched from the ship's bottom centre.
func (g *Game) enemyFire() {
	ships := g.formation.ships
	if len(ships) == 0 {
		return
	}
	chance := g.difficulty.FireChance(g.cfg.Shots.FireChance, g.score, g.ticks)
	for i := range g.enemyShots.slots {
		ship := &ships[g.rng.Intn(len(ships))]
		roll := g.rng.Float64()
		slot := &g.enemyShots.slots[i]
		if !ship.Visible() || slot.Visible() || !slot.HasSprite() || roll >= chance {
			continue
		}
		box, ok := ship.BoundingBox()
		if !ok {
			continue
		}
		cx, _ := box.Center()
		g.enemyShots.place(i, cx, box.Bottom())
	}
}
