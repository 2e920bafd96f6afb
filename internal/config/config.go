// Package config provides YAML-based game configuration loading and
// difficulty management for the invaders game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// InvadersConfig contains all configuration for the invaders game.
type InvadersConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Formation  FormationConfig  `yaml:"formation"`
	Shots      ShotsConfig      `yaml:"shots"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the logical play field in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Sprite       string  `yaml:"sprite"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // distance of the player's top from the field bottom
	Speed        float64 `yaml:"speed"`
}

// FormationConfig defines the enemy grid and how it sweeps.
type FormationConfig struct {
	Columns    int      `yaml:"columns"`
	Rows       int      `yaml:"rows"`
	RowSprites []string `yaml:"row_sprites"` // one per row, last entry repeats
	ShipWidth  float64  `yaml:"ship_width"`
	ShipHeight float64  `yaml:"ship_height"`
	Spacing    float64  `yaml:"spacing"` // horizontal pitch between column origins
	OffsetX    float64  `yaml:"offset_x"`
	Speed      float64  `yaml:"speed"`
	Margin     float64  `yaml:"margin"`    // reversal margin from the field edges
	StepDown   float64  `yaml:"step_down"` // classic mode drop per reversal
}

// ShotsConfig defines both projectile pools.
type ShotsConfig struct {
	PoolSize    int     `yaml:"pool_size"`
	Speed       float64 `yaml:"speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	MuzzleGap   float64 `yaml:"muzzle_gap"`
	PlayerLaser string  `yaml:"player_sprite"`
	EnemyLaser  string  `yaml:"enemy_sprite"`
	FireChance  float64 `yaml:"fire_chance"` // per slot, per frame
}

// ScoringConfig defines points.
type ScoringConfig struct {
	PointsPerShip int `yaml:"points_per_ship"`
}

// RowSprite returns the sprite path for a formation row.
func (f FormationConfig) RowSprite(row int) string {
	if len(f.RowSprites) == 0 {
		return ""
	}
	if row >= len(f.RowSprites) {
		row = len(f.RowSprites) - 1
	}
	return f.RowSprites[row]
}

// Ships returns the total number of ships in the grid.
func (f FormationConfig) Ships() int {
	return f.Columns * f.Rows
}

// Validate reports the first problem that makes cfg unplayable.
func Validate(cfg InvadersConfig) error {
	switch {
	case cfg.Field.Width <= 0 || cfg.Field.Height <= 0:
		return fmt.Errorf("%w: field size %vx%v", ErrInvalid, cfg.Field.Width, cfg.Field.Height)
	case cfg.Player.Sprite == "":
		return fmt.Errorf("%w: player sprite is empty", ErrInvalid)
	case cfg.Player.Width <= 0 || cfg.Player.Height <= 0:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalid, cfg.Player.Width, cfg.Player.Height)
	case cfg.Formation.Columns <= 0 || cfg.Formation.Rows <= 0:
		return fmt.Errorf("%w: formation grid %dx%d", ErrInvalid, cfg.Formation.Columns, cfg.Formation.Rows)
	case len(cfg.Formation.RowSprites) == 0:
		return fmt.Errorf("%w: formation has no row sprites", ErrInvalid)
	case cfg.Formation.ShipWidth <= 0 || cfg.Formation.ShipHeight <= 0:
		return fmt.Errorf("%w: ship size %vx%v", ErrInvalid, cfg.Formation.ShipWidth, cfg.Formation.ShipHeight)
	case cfg.Shots.PoolSize <= 0:
		return fmt.Errorf("%w: shot pool size %d", ErrInvalid, cfg.Shots.PoolSize)
	case cfg.Shots.FireChance < 0 || cfg.Shots.FireChance > 1:
		return fmt.Errorf("%w: fire chance %v outside [0,1]", ErrInvalid, cfg.Shots.FireChance)
	case cfg.Scoring.PointsPerShip < 0:
		return fmt.Errorf("%w: negative points per ship", ErrInvalid)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to formation speed at max difficulty
	FireMultiplier  float64 `yaml:"fire_multiplier"`  // Multiplier added to fire chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
