package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Show the variant menu with the best tile of each variant.
Press Enter to play, Tab for the scoreboard, Q to quit.
Quitting a game returns to the menu.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

func runMenu() error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, logger, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, logger, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		// Config is reloaded per game so edits apply without a restart.
		env, err := gameEnv(store)
		if err != nil {
			return err
		}
		game, err := registry.Create(result.GameID, env)
		if err != nil {
			return err
		}

		gameCfg := cfg
		if flagSeed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, gameCfg, logger); err != nil {
			return err
		}
	}
}
