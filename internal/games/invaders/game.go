// Package invaders implements a Space Invaders game: a player ship at the
// bottom of the field, a sweeping formation of enemy ships, and two fixed
// pools of laser shots.
package invaders

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/entity"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

// outcome of a run. Terminal outcomes latch until the next Reset.
type outcome int

const (
	playing outcome = iota
	won
	lost
)

func (o outcome) String() string {
	switch o {
	case won:
		return "won"
	case lost:
		return "lost"
	default:
		return "playing"
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// sharedLoader is used by games created through the registry.
var sharedLoader sprite.Loader = sprite.NewAtlas(sprite.DefaultFS())

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLoader replaces the sprite loader used by registry-created games.
func SetLoader(r sprite.Loader) {
	sharedLoader = r
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for sprite failures and diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithLoader sets the sprite loader.
func WithLoader(r sprite.Loader) Option {
	return func(g *Game) { g.loader = r }
}

// WithConfig bypasses config file loading.
func WithConfig(cfg config.InvadersConfig) Option {
	return func(g *Game) { g.fixedCfg = &cfg }
}

// Game implements the invaders game logic.
type Game struct {
	mode     Mode
	log      *log.Logger
	loader   sprite.Loader
	fixedCfg *config.InvadersConfig

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	ctrl       *entity.Controller
	view       sprite.Renderer
	trajectory Trajectory

	// Entities
	player      entity.Object
	formation   formation
	playerShots pool
	enemyShots  pool

	// Game state
	score   int
	outcome outcome
	inMenu  bool
	paused  bool
	exit    bool
	ticks   int

	// Last rendered screen size, for mapping clicks to the field
	screenW int
	screenH int
}

// New creates a game in the given mode.
func New(mode Mode, opts ...Option) *Game {
	g := &Game{mode: mode}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Mode returns the formation mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset loads configuration and sprites and puts the game in its menu.
// Any sprites held from a previous run are released first. Only a player
// sprite failure is fatal; ships and shots that fail to load stay hidden.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	if g.log == nil {
		g.log = log.Default()
	}
	if g.loader == nil {
		g.loader = sharedLoader
	}
	g.Free()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.runtime = runtime
	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness
	g.ctrl = entity.NewController(cfg.Field.Width, cfg.Field.Height)
	g.view = sprite.NewRenderer(cfg.Field.Width, cfg.Field.Height)
	g.trajectory = g.mode.trajectory(cfg.Formation)

	g.score = 0
	g.outcome = playing
	g.inMenu = true
	g.paused = false
	g.exit = false
	g.ticks = 0

	if err := g.setupPlayer(); err != nil {
		return err
	}
	g.setupFormation()
	g.playerShots = g.newPool("player shot", cfg.Shots.PlayerLaser, -1)
	g.enemyShots = g.newPool("enemy shot", cfg.Shots.EnemyLaser, 1)

	g.log.Debug("game reset", "mode", g.ID(), "seed", seed,
		"ships", len(g.formation.ships), "shots", cfg.Shots.PoolSize)
	return nil
}

func (g *Game) loadConfig() (config.InvadersConfig, error) {
	var cfg config.InvadersConfig
	if g.fixedCfg != nil {
		cfg = *g.fixedCfg
	} else {
		var err error
		cfg, err = config.LoadInvaders(configPath)
		if err != nil {
			return cfg, err
		}
		if difficultyPreset != "" {
			config.ApplyInvadersPreset(&cfg, difficultyPreset)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (g *Game) setupPlayer() error {
	p := g.cfg.Player
	err := g.ctrl.SetupObject(&g.player, g.loader, entity.Setup{
		Sprite:   p.Sprite,
		Position: core.V(g.cfg.Field.Width/2-p.Width/2, g.cfg.Field.Height-p.BottomOffset),
		Size:     core.V(p.Width, p.Height),
		Speed:    p.Speed,
		Visible:  true,
	})
	if err != nil {
		g.log.Error("player sprite not set", "path", p.Sprite, "err", err)
		return fmt.Errorf("invaders: player sprite: %w", err)
	}
	return nil
}

func (g *Game) newPool(kind, path string, dirY float64) pool {
	s := g.cfg.Shots
	p := newPool(s.PoolSize)
	for i := range p.slots {
		err := g.ctrl.SetupObject(&p.slots[i], g.loader, entity.Setup{
			Sprite:    path,
			Direction: core.V(0, dirY),
			Speed:     s.Speed,
			Size:      core.V(s.Width, s.Height),
		})
		if err != nil {
			g.log.Warn("shot sprite not set", "kind", kind, "slot", i, "path", path, "err", err)
		}
	}
	return p
}

// Free releases every sprite the game holds.
func (g *Game) Free() {
	g.player.Free()
	g.formation.free()
	g.playerShots.free()
	g.enemyShots.free()
}

// Update advances the game by dt. Nothing moves while the game is in its
// menu, paused, or finished.
func (g *Game) Update(dt time.Duration) core.StepResult {
	if g.inMenu || g.paused || g.outcome != playing || g.ctrl == nil {
		return core.StepResult{State: g.State()}
	}
	secs := dt.Seconds()
	g.ticks++

	g.updateGameStates()
	if g.outcome == playing {
		g.moveObjects(secs)
		g.shotCollision()
		g.enemyFire()
	}

	if g.outcome != playing {
		g.log.Info("run finished", "mode", g.ID(), "outcome", g.outcome, "score", g.score, "ticks", g.ticks)
	}
	return core.StepResult{State: g.State()}
}

// updateGameStates sets won when no ship is visible and lost when a ship
// reaches the player or the bottom of the field. A loss wins over a win
// found in the same frame.
func (g *Game) updateGameStates() {
	if g.formation.visibleCount() == 0 {
		g.outcome = won
	}
	player, ok := g.player.BoundingBox()
	for i := range g.formation.ships {
		ship := &g.formation.ships[i]
		if !ship.Visible() {
			continue
		}
		box, hasBox := ship.BoundingBox()
		if !hasBox {
			continue
		}
		if (ok && box.IsInside(player)) || box.Bottom() >= g.cfg.Field.Height {
			g.outcome = lost
			return
		}
	}
}

func (g *Game) moveObjects(dt float64) {
	g.ctrl.MoveObject(&g.player, dt)

	speed := g.difficulty.Speed(g.cfg.Formation.Speed, g.score, g.ticks)
	g.formation.sweep(g.ctrl, g.trajectory, speed, dt)

	g.playerShots.advance(g.ctrl, dt)
	g.enemyShots.advance(g.ctrl, dt)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.outcome != playing,
		Won:      g.outcome == won,
		Paused:   g.paused,
		Exit:     g.exit,
	}
}

// InMenu reports whether the start prompt is showing.
func (g *Game) InMenu() bool {
	return g.inMenu
}

func init() {
	for _, m := range Modes() {
		m := m
		registry.Register(m.ID(), func() registry.Game {
			return New(m)
		})
	}
}
