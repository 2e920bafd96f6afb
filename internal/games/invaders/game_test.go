package invaders

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

const frame = time.Second / 60

func testConfig() config.InvadersConfig {
	cfg := config.DefaultInvadersConfig()
	cfg.Shots.FireChance = 0
	cfg.Difficulty.Enabled = false
	return cfg
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 46, TickRate: 60, Seed: 42}
}

func newGame(t *testing.T, mode Mode, cfg config.InvadersConfig) (*Game, *sprite.Atlas) {
	t.Helper()
	atlas := sprite.NewAtlas(sprite.DefaultFS())
	g := New(mode, WithConfig(cfg), WithLoader(atlas), WithLogger(log.New(io.Discard)))
	if err := g.Reset(testRuntime()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g, atlas
}

func startedGame(t *testing.T, cfg config.InvadersConfig) *Game {
	t.Helper()
	g, _ := newGame(t, ModeArc, cfg)
	g.HandleKey(core.Press(core.KeyEnter))
	if g.InMenu() {
		t.Fatal("Enter did not leave the menu")
	}
	return g
}

func TestGameReset(t *testing.T) {
	g, atlas := newGame(t, ModeArc, testConfig())

	if !g.InMenu() {
		t.Error("game should start in the menu")
	}
	if got := g.player.Position(); got != core.V(270, 820) {
		t.Errorf("player position = %+v, want (270, 820)", got)
	}
	if got := g.formation.visibleCount(); got != 40 {
		t.Errorf("visible ships = %d, want 40", got)
	}
	if len(g.playerShots.slots) != 10 || len(g.enemyShots.slots) != 10 {
		t.Errorf("pool sizes = %d/%d", len(g.playerShots.slots), len(g.enemyShots.slots))
	}
	if g.playerShots.visibleCount() != 0 || g.enemyShots.visibleCount() != 0 {
		t.Error("shots should start hidden")
	}

	// Row sprites follow the row index, not the column.
	rowPaths := []string{"enemy_black", "enemy_blue", "enemy_green", "enemy_red", "enemy_black"}
	for i := range g.formation.ships {
		row, col := g.formation.cell(i)
		path := g.formation.ships[i].Sprite().Path()
		if !strings.Contains(path, rowPaths[row]) {
			t.Errorf("ship %d (row %d) sprite = %s", i, row, path)
		}
		if got := g.formation.ships[i].Position().X; got != 20+float64(col)*60 {
			t.Errorf("ship %d x = %v", i, got)
		}
	}

	g.Free()
	if atlas.Cached() != 0 {
		t.Errorf("atlas holds %d textures after Free", atlas.Cached())
	}
}

func TestResetReleasesPreviousRun(t *testing.T) {
	g, atlas := newGame(t, ModeArc, testConfig())
	before := atlas.Refs("images/laser_blue.yaml")
	if err := g.Reset(testRuntime()); err != nil {
		t.Fatal(err)
	}
	if got := atlas.Refs("images/laser_blue.yaml"); got != before {
		t.Errorf("refs after second Reset = %d, want %d", got, before)
	}
}

func TestPlayerSpriteFailureIsFatal(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Sprite = "images/missing.yaml"
	g := New(ModeArc, WithConfig(cfg), WithLoader(sprite.NewAtlas(sprite.DefaultFS())), WithLogger(log.New(io.Discard)))

	err := g.Reset(testRuntime())
	if !errors.Is(err, sprite.ErrTextureNotFound) {
		t.Fatalf("Reset err = %v, want ErrTextureNotFound", err)
	}
}

func TestInvalidConfigIsFatal(t *testing.T) {
	cfg := testConfig()
	cfg.Shots.PoolSize = 0
	g := New(ModeArc, WithConfig(cfg), WithLogger(log.New(io.Discard)))
	if err := g.Reset(testRuntime()); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("Reset err = %v, want ErrInvalid", err)
	}
}

func TestShipSpriteFailureHidesShip(t *testing.T) {
	cfg := testConfig()
	cfg.Formation.RowSprites = []string{"images/missing.yaml", "images/enemy_blue.yaml"}
	g, _ := newGame(t, ModeArc, cfg)

	if got := g.formation.visibleCount(); got != 32 {
		t.Errorf("visible ships = %d, want 32", got)
	}
	for i := 0; i < 8; i++ {
		if g.formation.ships[i].HasSprite() || g.formation.ships[i].Visible() {
			t.Errorf("ship %d should be hidden without a sprite", i)
		}
	}

	g.HandleKey(core.Press(core.KeyEnter))
	for i := 0; i < 120; i++ {
		g.Update(frame)
	}
	if g.State().GameOver {
		t.Error("failed ships should not end the game")
	}
}

func TestMenuGatesUpdate(t *testing.T) {
	g, _ := newGame(t, ModeArc, testConfig())
	before := g.Snapshot()

	g.HandleKey(core.Press(core.KeyD))
	g.HandleKey(core.Press(core.KeySpace))
	for i := 0; i < 30; i++ {
		g.Update(frame)
	}

	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("world changed while in the menu")
	}
	if g.playerShots.visibleCount() != 0 {
		t.Error("fired while in the menu")
	}
}

func TestFireFirstFit(t *testing.T) {
	g := startedGame(t, testConfig())

	g.HandleKey(core.Press(core.KeySpace))
	if g.playerShots.visibleCount() != 1 || !g.playerShots.slots[0].Visible() {
		t.Fatal("first shot should use slot 0")
	}
	shot := g.playerShots.slots[0].Position()
	if shot.X != 270+50-4.5 || shot.Y != 810 {
		t.Errorf("shot at %+v, want muzzle (315.5, 810)", shot)
	}

	// Repeat events do not fire.
	g.HandleKey(core.KeyEvent{Key: core.KeySpace, Action: core.KeyRepeat})
	if g.playerShots.visibleCount() != 1 {
		t.Error("repeat should not fire")
	}

	// Free a middle slot: the next shot takes it.
	for i := 0; i < 9; i++ {
		g.HandleKey(core.Press(core.KeySpace))
	}
	g.playerShots.slots[4].SetVisible(false)
	if got := g.fire(); got != 4 {
		t.Errorf("fire() = %d, want first hidden slot 4", got)
	}

	// All slots in flight: firing is a no-op.
	before := g.Snapshot()
	if got := g.fire(); got != -1 {
		t.Errorf("fire() with full pool = %d, want -1", got)
	}
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("full pool fire changed the world")
	}
}

func TestShotHitsOneShipPerFrame(t *testing.T) {
	g := startedGame(t, testConfig())

	// A wide shot spanning the gap between ships 0 and 1 overlaps both.
	b0, _ := g.formation.ships[0].BoundingBox()
	g.playerShots.slots[0].SetSize(80, 100)
	g.playerShots.place(0, b0.Right()+5, b0.Y-40)

	g.shotCollision()

	if g.score != 5 {
		t.Errorf("score = %d, want 5", g.score)
	}
	if g.playerShots.slots[0].Visible() {
		t.Error("shot should be hidden after a hit")
	}
	hidden := 0
	for i := range g.formation.ships {
		if !g.formation.ships[i].Visible() {
			hidden++
		}
	}
	if hidden != 1 {
		t.Errorf("hidden ships = %d, want 1", hidden)
	}

	g.shotCollision()
	if g.score != 5 {
		t.Errorf("score after second pass = %d, want 5", g.score)
	}
}

func TestShotsLeavingFieldAreRecycled(t *testing.T) {
	g := startedGame(t, testConfig())

	g.playerShots.place(3, 100, -50)
	g.enemyShots.place(2, 100, g.cfg.Field.Height+1)
	g.shotCollision()

	if g.playerShots.slots[3].Visible() || g.enemyShots.slots[2].Visible() {
		t.Error("out-of-field shots should be hidden")
	}
	if g.score != 0 || g.State().GameOver {
		t.Error("recycling should not score or end the game")
	}
}

func TestEnemyShotHitsPlayer(t *testing.T) {
	g := startedGame(t, testConfig())

	p, _ := g.player.BoundingBox()
	g.enemyShots.place(0, p.X+p.W/2, p.Y+5)
	g.shotCollision()

	st := g.State()
	if !st.GameOver || st.Won {
		t.Errorf("state = %+v, want lost", st)
	}
}

func TestWinWhenNoShipVisible(t *testing.T) {
	g := startedGame(t, testConfig())

	for i := range g.formation.ships[1:] {
		g.formation.ships[i+1].SetVisible(false)
	}
	g.Update(frame)
	if g.State().GameOver {
		t.Fatal("won with a ship still visible")
	}

	g.formation.ships[0].SetVisible(false)
	g.Update(frame)
	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("state = %+v, want won", st)
	}

	// Terminal state is latched and the world is frozen.
	before := g.Snapshot()
	g.HandleKey(core.Press(core.KeyD))
	g.Update(frame)
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("world changed after the run ended")
	}
}

func TestShipReachingPlayerLoses(t *testing.T) {
	g := startedGame(t, testConfig())

	p := g.player.Position()
	g.formation.ships[10].SetPosition(p.X, p.Y)
	g.Update(frame)

	st := g.State()
	if !st.GameOver || st.Won {
		t.Errorf("state = %+v, want lost", st)
	}
}

func TestPlayerMovement(t *testing.T) {
	g := startedGame(t, testConfig())

	g.HandleKey(core.Press(core.KeyD))
	g.Update(time.Second / 2)
	if got := g.player.Position().X; got != 370 {
		t.Errorf("x after moving right = %v, want 370", got)
	}

	// Last key wins; releasing any movement key stops the ship.
	g.HandleKey(core.Press(core.KeyA))
	if g.player.Direction() != core.V(-1, 0) {
		t.Errorf("direction = %+v, want (-1, 0)", g.player.Direction())
	}
	g.HandleKey(core.KeyEvent{Key: core.KeyLeft, Action: core.KeyRepeat})
	g.HandleKey(core.Release(core.KeyLeft))
	if !g.player.Direction().IsZero() {
		t.Errorf("direction after release = %+v", g.player.Direction())
	}

	// The field edge stops the ship.
	g.HandleKey(core.Press(core.KeyRight))
	for i := 0; i < 10; i++ {
		g.Update(time.Second)
	}
	box, _ := g.player.BoundingBox()
	if box.Right() > g.cfg.Field.Width {
		t.Errorf("player left the field: %+v", box)
	}
}

func TestPauseAndExit(t *testing.T) {
	g := startedGame(t, testConfig())

	g.HandleKey(core.Press(core.KeyP))
	if !g.State().Paused {
		t.Fatal("P should pause")
	}
	before := g.Snapshot()
	g.HandleKey(core.Press(core.KeyD))
	g.Update(time.Second)
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("world changed while paused")
	}

	g.HandleKey(core.Press(core.KeyP))
	if g.State().Paused {
		t.Error("second P should resume")
	}

	g.HandleKey(core.Press(core.KeyEscape))
	if !g.State().Exit {
		t.Error("Escape should request exit")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := startedGame(t, testConfig())

	g.HandleKey(core.Press(core.KeyR))
	if g.State().GameOver {
		t.Fatal("R while playing should do nothing")
	}

	g.score = 25
	g.outcome = lost
	g.HandleKey(core.Press(core.KeyR))

	st := g.State()
	if st.GameOver || st.Score != 0 || g.InMenu() {
		t.Errorf("after restart state = %+v, inMenu = %v", st, g.InMenu())
	}
	if g.formation.visibleCount() != 40 {
		t.Error("restart should rebuild the formation")
	}
}

func TestFormationSweepIsRigid(t *testing.T) {
	g := startedGame(t, testConfig())

	reversals := 0
	dir := g.formation.direction
	for i := 0; i < 60*20; i++ {
		g.Update(frame)
		if g.formation.direction != dir {
			reversals++
			dir = g.formation.direction
		}
		for j := range g.formation.ships {
			box, _ := g.formation.ships[j].BoundingBox()
			if box.X < 0 || box.Right() > g.cfg.Field.Width {
				t.Fatalf("frame %d: ship %d outside field: %+v", i, j, box)
			}
		}
	}
	if reversals < 2 {
		t.Errorf("reversals = %d, want at least 2", reversals)
	}

	for i := range g.formation.ships {
		row, col := g.formation.cell(i)
		x := g.formation.ships[i].Position().X
		want := g.formation.ships[row*8].Position().X + float64(col)*60
		if math.Abs(x-want) > 1e-6 {
			t.Errorf("ship %d x = %v, want %v", i, x, want)
		}
	}
}

func TestEnemyFire(t *testing.T) {
	cfg := testConfig()
	cfg.Shots.FireChance = 1
	g := startedGame(t, cfg)

	g.enemyFire()
	if got := g.enemyShots.visibleCount(); got != 10 {
		t.Fatalf("enemy shots = %d, want 10", got)
	}

	bottoms := map[int]bool{}
	for i := range g.formation.ships {
		box, _ := g.formation.ships[i].BoundingBox()
		bottoms[round(box.Bottom())] = true
	}
	for i := range g.enemyShots.slots {
		if y := round(g.enemyShots.slots[i].Position().Y); !bottoms[y] {
			t.Errorf("enemy shot %d at y=%d, not at a ship's bottom", i, y)
		}
	}

	// Busy slots are not re-fired.
	before := g.Snapshot()
	g.enemyFire()
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("visible enemy shots were moved by enemyFire")
	}
}

func TestEnemyFireNeedsVisibleShip(t *testing.T) {
	cfg := testConfig()
	cfg.Shots.FireChance = 1
	g := startedGame(t, cfg)

	for i := range g.formation.ships {
		g.formation.ships[i].SetVisible(false)
	}
	g.enemyFire()
	if got := g.enemyShots.visibleCount(); got != 0 {
		t.Errorf("enemy shots = %d, want 0", got)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := testConfig()
	cfg.Shots.FireChance = 0.02

	run := func() Snapshot {
		g := startedGame(t, cfg)
		for i := 0; i < 600; i++ {
			switch {
			case i%90 == 0:
				g.HandleKey(core.Press(core.KeyA))
			case i%90 == 45:
				g.HandleKey(core.Press(core.KeyD))
			}
			if i%20 == 0 {
				g.HandleKey(core.Press(core.KeySpace))
			}
			if g.Update(frame).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Score != s2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", s1.Score, s2.Score)
	}
}

func TestModeTrajectories(t *testing.T) {
	t.Run("arc", func(t *testing.T) {
		g, _ := newGame(t, ModeArc, testConfig())
		// Ship 18 is row 2; its x sets the arc height.
		x := g.formation.ships[18].Position().X
		want := (x-320)*(x-320)/500 + 140
		if got := g.formation.ships[18].Position().Y; math.Abs(got-want) > 1e-9 {
			t.Errorf("y = %v, want %v", got, want)
		}
	})

	t.Run("wave", func(t *testing.T) {
		g, _ := newGame(t, ModeWave, testConfig())
		want := 8*math.Sin(20.0/4) + 8
		if got := g.formation.ships[0].Position().Y; math.Abs(got-want) > 1e-9 {
			t.Errorf("y = %v, want %v", got, want)
		}
	})

	t.Run("classic", func(t *testing.T) {
		g, _ := newGame(t, ModeClassic, testConfig())
		if got := g.formation.ships[8].Position().Y; got != 90 {
			t.Fatalf("row 1 start y = %v, want 90", got)
		}
		g.formation.sweep(g.ctrl, g.trajectory, 50, 1)
		if got := g.formation.ships[8].Position().Y; got != 90 {
			t.Errorf("y before reversal = %v, want 90", got)
		}
		g.formation.sweep(g.ctrl, g.trajectory, 50, 3)
		if g.formation.direction != -1 {
			t.Fatal("formation did not reverse")
		}
		if got := g.formation.ships[8].Position().Y; got != 100 {
			t.Errorf("y after reversal = %v, want 100", got)
		}
	})

	t.Run("gravity", func(t *testing.T) {
		g, _ := newGame(t, ModeGravity, testConfig())
		g.formation.sweep(g.ctrl, g.trajectory, 50, 1)
		if got := g.formation.ships[0].Position().Y; math.Abs(got-(20+9.18)) > 1e-9 {
			t.Errorf("y = %v, want 29.18", got)
		}
	})
}

func TestRender(t *testing.T) {
	g, _ := newGame(t, ModeArc, testConfig())
	dst := core.NewScreen(80, 46)

	g.Render(dst)
	if !strings.Contains(dst.String(), menuPrompt) {
		t.Error("menu prompt not rendered")
	}

	g.HandleKey(core.Press(core.KeyEnter))
	dst.Clear()
	g.Render(dst)
	out := dst.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("score not rendered")
	}
	if strings.Contains(out, menuPrompt) {
		t.Error("menu prompt still rendered")
	}

	for i := range g.formation.ships {
		g.formation.ships[i].SetVisible(false)
	}
	g.Update(frame)
	dst.Clear()
	g.Render(dst)
	out = dst.String()
	if !strings.Contains(out, winTitle) || !strings.Contains(out, restartTip) {
		t.Error("win panel not rendered")
	}
	if !strings.ContainsRune(out, '┌') || !strings.ContainsRune(out, '┘') {
		t.Error("win panel has no border")
	}
}

func TestModesRegistered(t *testing.T) {
	for _, m := range Modes() {
		g, err := registry.Create(m.ID())
		if err != nil {
			t.Errorf("Create(%q): %v", m.ID(), err)
			continue
		}
		if g.Title() != m.Title() {
			t.Errorf("Title = %q, want %q", g.Title(), m.Title())
		}
	}
	if !registry.Exists(registry.Default) {
		t.Error("default game not registered")
	}
}
