package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(defaultInvadersYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	want := DefaultInvadersConfig()
	if cfg.Field != want.Field || cfg.Player != want.Player || cfg.Shots != want.Shots || cfg.Scoring != want.Scoring {
		t.Errorf("embedded defaults drifted from DefaultInvadersConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if cfg.Formation.Columns != 8 || cfg.Formation.Rows != 5 || len(cfg.Formation.RowSprites) != 5 {
		t.Errorf("formation = %+v", cfg.Formation)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(defaults) = %v", err)
	}
}

func TestLoadInvadersCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("formation:\n  columns: 4\n  rows: 2\nscoring:\n  points_per_ship: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders: %v", err)
	}
	if cfg.Formation.Columns != 4 || cfg.Formation.Rows != 2 {
		t.Errorf("grid = %dx%d, want 4x2", cfg.Formation.Columns, cfg.Formation.Rows)
	}
	if cfg.Scoring.PointsPerShip != 10 {
		t.Errorf("points = %d", cfg.Scoring.PointsPerShip)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Field.Width != 640 || cfg.Player.Speed != 200 {
		t.Errorf("defaults not kept: field=%+v player=%+v", cfg.Field, cfg.Player)
	}
}

func TestLoadInvadersCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadInvaders(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("field: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInvaders(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvadersConfig)
	}{
		{"zero field", func(c *InvadersConfig) { c.Field.Width = 0 }},
		{"no player sprite", func(c *InvadersConfig) { c.Player.Sprite = "" }},
		{"empty grid", func(c *InvadersConfig) { c.Formation.Rows = 0 }},
		{"no row sprites", func(c *InvadersConfig) { c.Formation.RowSprites = nil }},
		{"zero ship", func(c *InvadersConfig) { c.Formation.ShipHeight = 0 }},
		{"empty pool", func(c *InvadersConfig) { c.Shots.PoolSize = 0 }},
		{"fire chance too high", func(c *InvadersConfig) { c.Shots.FireChance = 1.5 }},
		{"negative points", func(c *InvadersConfig) { c.Scoring.PointsPerShip = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			tt.mutate(&cfg)
			if err := Validate(cfg); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestRowSprite(t *testing.T) {
	f := FormationConfig{RowSprites: []string{"a", "b"}}
	for row, want := range []string{"a", "b", "b", "b"} {
		if got := f.RowSprite(row); got != want {
			t.Errorf("RowSprite(%d) = %q, want %q", row, got, want)
		}
	}
	if got := (FormationConfig{}).RowSprite(0); got != "" {
		t.Errorf("empty RowSprite = %q", got)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyInvadersPreset(t *testing.T) {
	base := DefaultInvadersConfig()

	hard := DefaultInvadersConfig()
	ApplyInvadersPreset(&hard, DifficultyHard)
	if !hard.Difficulty.Enabled || hard.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard difficulty = %+v", hard.Difficulty)
	}
	if hard.Shots.FireChance != base.Shots.FireChance*2 || hard.Formation.Speed != base.Formation.Speed*1.5 {
		t.Errorf("hard gameplay not adjusted: %+v %+v", hard.Shots, hard.Formation)
	}

	fixed := DefaultInvadersConfig()
	ApplyInvadersPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, FireMultiplier: 3.0},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score     int
		wantLevel float64
		wantSpeed float64
	}{
		{0, 0, 50},
		{50, 0.5, 75},
		{100, 1, 100},
		{500, 1, 100},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); math.Abs(got-tt.wantLevel) > 1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.wantLevel)
		}
		if got := dm.Speed(50, tt.score, 0); math.Abs(got-tt.wantSpeed) > 1e-9 {
			t.Errorf("Speed(%d) = %v, want %v", tt.score, got, tt.wantSpeed)
		}
	}

	if got := dm.FireChance(0.01, 100, 0); math.Abs(got-0.04) > 1e-9 {
		t.Errorf("FireChance = %v, want 0.04", got)
	}
	if got := dm.FireChance(0.5, 100, 0); got != 1 {
		t.Errorf("FireChance cap = %v, want 1", got)
	}

	fixed := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 0.3})
	if got := fixed.Level(100, 0); got != 0.3 {
		t.Errorf("disabled Level = %v, want 0.3", got)
	}
}

func TestDifficultyManagerTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 0},
	})
	if got := dm.Level(0, 1); got != 1 {
		t.Errorf("Level with max_at 0 = %v, want 1", got)
	}
}
