package invaders

import "math"

// Snapshot contains a summary of the game state for replay checks and
// determinism tests. Positions are rounded to whole field units.
type Snapshot struct {
	Tick      int
	Score     int
	Outcome   string
	InMenu    bool
	PlayerX   int
	PlayerY   int
	Direction int // shared formation direction

	// Ship state (each ship is 3 ints: X, Y, Visible)
	ShipData []int

	// Shot state (each shot is 3 ints: X, Y, Visible), player pool first
	ShotData []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	p := g.player.Position()
	snap := Snapshot{
		Tick:      g.ticks,
		Score:     g.score,
		Outcome:   g.outcome.String(),
		InMenu:    g.inMenu,
		PlayerX:   round(p.X),
		PlayerY:   round(p.Y),
		Direction: int(g.formation.direction),
		ShipData:  make([]int, 0, len(g.formation.ships)*3),
		ShotData:  make([]int, 0, (len(g.playerShots.slots)+len(g.enemyShots.slots))*3),
	}

	for i := range g.formation.ships {
		ship := &g.formation.ships[i]
		pos := ship.Position()
		snap.ShipData = append(snap.ShipData, round(pos.X), round(pos.Y), boolInt(ship.Visible()))
	}
	for _, pl := range []*pool{&g.playerShots, &g.enemyShots} {
		for i := range pl.slots {
			pos := pl.slots[i].Position()
			snap.ShotData = append(snap.ShotData, round(pos.X), round(pos.Y), boolInt(pl.slots[i].Visible()))
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Outcome))    //#nosec G115 -- hash computation
	h = h*31 + uint64(boolInt(snap.InMenu)) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Direction)       //#nosec G115 -- hash computation

	for _, v := range snap.ShipData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ShotData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}

func round(v float64) int {
	return int(math.Round(v))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
