package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagBestReset bool

var bestCmd = &cobra.Command{
	Use:   "best [variant]",
	Short: "Print or reset the best tile of each variant",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]string, 0)
		if len(args) == 1 {
			if !registry.Exists(args[0]) {
				return unknownVariant(args[0])
			}
			ids = append(ids, args[0])
		} else {
			for _, g := range registry.List() {
				ids = append(ids, g.ID)
			}
		}

		store, err := storage.Open(flagDB)
		if err != nil {
			return err
		}
		defer store.Close()

		return printBest(cmd.OutOrStdout(), store, ids, flagBestReset)
	},
}

func init() {
	bestCmd.Flags().BoolVar(&flagBestReset, "reset", false, "Clear the stored best instead of printing it")
}

// printBest writes one line per variant, or clears each entry when reset is set.
func printBest(w io.Writer, store *storage.Store, ids []string, reset bool) error {
	for _, id := range ids {
		if reset {
			if err := store.ClearHighScore(id); err != nil {
				return err
			}
			logger.Info("high score cleared", "game", id)
			fmt.Fprintf(w, "%-14s cleared\n", id)
			continue
		}

		entry, err := store.Entry(id)
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Fprintf(w, "%-14s %6s\n", id, "-")
			continue
		}
		fmt.Fprintf(w, "%-14s %6d  %s\n", id, entry.Value, entry.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
