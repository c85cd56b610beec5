package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/core"
	"github.com/vovakirdan/sats-skater/internal/platform/tui"
	"github.com/vovakirdan/sats-skater/internal/registry"
)

// presetter is implemented by games with per-instance difficulty presets.
type presetter interface {
	SetPreset(p config.DifficultyPreset)
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty, ride, check the scoreboard",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to ride.
After a run ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Ride
  Tab          - Scoreboard
  Q            - Quit

Examples:
  skater menu
  skater menu --fps 30
  skater menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name stored with your runs")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	logger := newLogger("skater")

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPlayer,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		game, err := registry.Create(tui.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			break
		}
		if p, ok := game.(presetter); ok {
			p.SetPreset(menuResult.Preset)
		}

		// Update seed for each ride unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, tui.Options{
			Store:  store,
			Sink:   tui.LogSink{Logger: logger},
			Logger: logger,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
