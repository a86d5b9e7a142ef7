package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a 2048 variant",
	Long: `Start a game of the given variant. Use 'list' to see the variants.

Controls:
  Arrows / WASD / hjkl  Slide tiles
  U / Backspace         Undo last move
  Space                 New game after game over
  Ctrl+S                Save screenshot
  ?                     Toggle help
  Q / Ctrl+C            Quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(args[0])
	},
}

func unknownVariant(id string) error {
	return fmt.Errorf("unknown variant %q, use 't2048 list' to see available variants", id)
}

func play(variant string) error {
	if !registry.Exists(variant) {
		return unknownVariant(variant)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	env, err := gameEnv(store)
	if err != nil {
		return err
	}
	game, err := registry.Create(variant, env)
	if err != nil {
		return err
	}
	return tui.Run(game, runtimeConfig(), logger)
}
