package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse the best tiles in a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(flagDB)
		if err != nil {
			return err
		}
		defer store.Close()

		cfg := runtimeConfig()
		_, err = tui.RunScoreboard(store, logger, cfg.ScreenW, cfg.ScreenH)
		return err
	},
}
