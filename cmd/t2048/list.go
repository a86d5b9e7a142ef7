package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available variants",
	Run: func(cmd *cobra.Command, args []string) {
		games := registry.List()
		if len(games) == 0 {
			fmt.Println("No variants registered.")
			return
		}

		fmt.Println("Available variants:")
		fmt.Println()
		for _, g := range games {
			fmt.Printf("  %-14s %s\n", g.ID, g.Title)
		}
		fmt.Println()
		fmt.Println("Run 't2048 play <variant>' to start.")
	},
}
