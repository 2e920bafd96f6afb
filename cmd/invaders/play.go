package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSprites    string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode, or the default mode.

Controls:
  A/D, Left/Right - Move
  Space           - Fire
  Enter           - Start
  P               - Pause
  R               - Restart (after the run ends)
  Esc             - Exit
  Ctrl+S          - Screenshot
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Slower fire, faster ship, progression from the bottom
  normal - Config values
  hard   - More fire, faster formation
  fixed  - No progression

Examples:
  invaders play
  invaders play invaders_wave
  invaders play invaders_classic --difficulty hard
  invaders play --config ./my-invaders.yaml
  invaders play --sprites ./my-sprites`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	Run:         runPlay,
}

func init() {
	addGameFlags(playCmd)
	addPlayerFlag(playCmd)
}

// addGameFlags registers the flags that configure game instances.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom invaders config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagSprites, "sprites", "", "Directory whose sprite files override the built-in ones")
}

func addPlayerFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name to save scores under")
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.AnonymousPlayer
}

// configureGames applies the game flags to games created afterwards.
func configureGames() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	invaders.SetConfigPath(flagConfig)
	invaders.SetDifficultyPreset(preset)

	if flagSprites != "" {
		info, err := os.Stat(flagSprites)
		if err != nil {
			return fmt.Errorf("sprites: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("sprites: %s is not a directory", flagSprites)
		}
		invaders.SetLoader(sprite.NewAtlas(sprite.Overlay{os.DirFS(flagSprites), sprite.DefaultFS()}))
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Games run without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		log.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := registry.Default
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available modes.")
		os.Exit(1)
	}

	if err := configureGames(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, terminalConfig(), tui.WithPlayer(flagPlayer))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		log.Error("game failed", "game", gameID, "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
