package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// openStore opens the high score database. A failure is logged and
// reported as a nil store so the game stays playable without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDB)
	if err != nil {
		logger.Warn("high scores disabled", "db", flagDB, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: high scores disabled: %v\n", err)
		return nil
	}
	return store
}

// gameEnv builds the factory environment for a variant.
func gameEnv(store *storage.Store) (registry.Env, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return registry.Env{}, err
	}
	env := registry.Env{Config: cfg, Logger: logger}
	if store != nil {
		env.Scores = store
	}
	return env, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.FrameRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
