package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sats-skater/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config",
	Long: `Print the embedded default skater.yaml. Save it to
~/.sats-skater/configs/skater.yaml or ./configs/skater.yaml to tune the game.

With --config or --difficulty, prints the effective config instead.

Examples:
  skater config > ~/.sats-skater/configs/skater.yaml
  skater config --config ./my-skater.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfig == "" && flagDifficulty == "" {
		fmt.Print(string(config.GetDefaultYAML()))
		return nil
	}

	cfg, err := config.LoadSkater(flagConfig)
	if err != nil {
		return err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplySkaterPreset(&cfg, preset)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
