package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games and difficulty presets",
	Long:  `Shows the games registered in this binary and the difficulty presets they accept.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Print("Difficulties:")
	for _, p := range config.Presets {
		fmt.Printf(" %s", p)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println("Run 'skater play --difficulty <name>' to ride.")
}
