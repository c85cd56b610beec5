// skater is Sats Skater, an endless skateboarding runner for the terminal.
//
// Usage:
//
//	skater play             - Ride at the chosen difficulty
//	skater menu             - Pick a difficulty interactively
//	skater serve            - Host rides over SSH and the leaderboard over HTTP
//	skater scores           - Show high scores
//	skater sim              - Run the autopilot headless
//	skater config           - Print the default config
//	skater list             - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.sats-skater/scores.db)
//	--config <path>       - Load a custom skater.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//
// Environment variables (also read from .env): SKATER_DB, SKATER_LOG_LEVEL,
// SKATER_SSH_ADDR, SKATER_HTTP_ADDR.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/games/skater"
)

const defaultDBPath = "~/.sats-skater/scores.db"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skater",
	Short: "Sats Skater - stack sats on a skateboard in your terminal",
	Long: `Sats Skater is an endless runner: jump the obstacles, grind the rails,
land tricks with power-ups and stack sats until you bail.

Available commands:
  play     - Ride right away
  menu     - Pick a difficulty, ride, check the scoreboard
  serve    - Start the SSH and HTTP servers
  scores   - View high scores
  sim      - Let the autopilot ride headless
  config   - Print the default config

Examples:
  skater play --difficulty hard
  skater menu
  skater serve --ssh :2222 --http :8080
  skater scores --difficulty normal
  skater sim --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom skater config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads .env, applies environment defaults to unset flags and
// configures the game package.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env file is fine
	//nolint:errcheck // Optional file
	godotenv.Load()

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = config.GetEnv("SKATER_DB", flagDBPath)
	}
	if !flags.Changed("log-level") {
		flagLogLevel = config.GetEnv("SKATER_LOG_LEVEL", flagLogLevel)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadSkater(flagConfig); err != nil {
			return err
		}
	}

	skater.SetConfigPath(flagConfig)
	skater.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger returns a logger with the given prefix at the configured level.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.GetLevel(),
	})
}
