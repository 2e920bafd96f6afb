package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Field: FieldConfig{
			Width:  640,
			Height: 920,
		},
		Player: PlayerConfig{
			Sprite:       "images/player.yaml",
			Width:        100,
			Height:       75,
			BottomOffset: 100,
			Speed:        200,
		},
		Formation: FormationConfig{
			Columns: 8,
			Rows:    5,
			RowSprites: []string{
				"images/enemy_black.yaml",
				"images/enemy_blue.yaml",
				"images/enemy_green.yaml",
				"images/enemy_red.yaml",
				"images/enemy_black.yaml",
			},
			ShipWidth:  50,
			ShipHeight: 50,
			Spacing:    60,
			OffsetX:    20,
			Speed:      50,
			Margin:     20,
			StepDown:   10,
		},
		Shots: ShotsConfig{
			PoolSize:    10,
			Speed:       200,
			Width:       9,
			Height:      37,
			MuzzleGap:   10,
			PlayerLaser: "images/laser_blue.yaml",
			EnemyLaser:  "images/laser_red.yaml",
			FireChance:  0.005,
		},
		Scoring: ScoringConfig{
			PointsPerShip: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				FireMultiplier:  2.0,
			},
		},
	}
}
