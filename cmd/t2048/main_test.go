package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// prepare isolates a test from .env files and restores flag state afterwards.
func prepare(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("T2048_LOG_FILE", "")
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() failed: %v", err)
	}
	t.Cleanup(func() {
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
		logger = log.New(io.Discard)
	})
}

func TestSetupEnvAppliesDefaults(t *testing.T) {
	prepare(t, listCmd)
	db := filepath.Join(t.TempDir(), "scores.db")
	t.Setenv("T2048_DB", db)
	t.Setenv("T2048_LOG_LEVEL", "debug")

	if err := setupEnv(listCmd, nil); err != nil {
		t.Fatalf("setupEnv() failed: %v", err)
	}
	if flagDB != db {
		t.Errorf("flagDB = %q, expected %q", flagDB, db)
	}
	if flagLogLevel != "debug" {
		t.Errorf("flagLogLevel = %q, expected debug", flagLogLevel)
	}
}

func TestSetupEnvFlagWins(t *testing.T) {
	prepare(t, listCmd)
	if err := listCmd.Flags().Set("db", "explicit.db"); err != nil {
		t.Fatal(err)
	}
	t.Setenv("T2048_DB", "from-env.db")

	if err := setupEnv(listCmd, nil); err != nil {
		t.Fatalf("setupEnv() failed: %v", err)
	}
	if flagDB != "explicit.db" {
		t.Errorf("flagDB = %q, an explicit flag must not be overridden", flagDB)
	}
}

func TestSetupEnvBadLevel(t *testing.T) {
	prepare(t, listCmd)
	t.Setenv("T2048_LOG_LEVEL", "loud")

	err := setupEnv(listCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "loud") {
		t.Errorf("setupEnv() error = %v, expected invalid level", err)
	}
}

func TestSetupEnvOpensLogFile(t *testing.T) {
	prepare(t, listCmd)
	path := filepath.Join(t.TempDir(), "logs", "t2048.log")
	t.Setenv("T2048_LOG_FILE", path)

	if err := setupEnv(listCmd, nil); err != nil {
		t.Fatalf("setupEnv() failed: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, expected the message", data)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.arcade/t2048.db", filepath.Join(home, ".arcade", "t2048.db")},
		{"/tmp/x.db", "/tmp/x.db"},
		{"rel/x.db", "rel/x.db"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := expandHome(tc.in); got != tc.want {
				t.Errorf("expandHome(%q) = %q, expected %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBestReportsErrorsAndClears(t *testing.T) {
	prepare(t, bestCmd)
	db := filepath.Join(t.TempDir(), "scores.db")
	if err := bestCmd.Flags().Set("db", db); err != nil {
		t.Fatal(err)
	}

	err := bestCmd.RunE(bestCmd, []string{"no_such_variant"})
	if err == nil || !strings.Contains(err.Error(), "no_such_variant") {
		t.Fatalf("RunE() error = %v, expected unknown variant", err)
	}

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveHighScore(t2048.VariantStandard.ID, 128); err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	if err := printBest(&out, store, []string{t2048.VariantStandard.ID}, false); err != nil {
		t.Fatalf("printBest() failed: %v", err)
	}
	if !strings.Contains(out.String(), "128") {
		t.Errorf("output = %q, expected the stored best", out.String())
	}
	store.Close()

	// --reset through the command clears the stored value.
	var buf strings.Builder
	bestCmd.SetOut(&buf)
	t.Cleanup(func() { bestCmd.SetOut(nil) })
	flagBestReset = true
	t.Cleanup(func() { flagBestReset = false })
	if err := bestCmd.RunE(bestCmd, []string{t2048.VariantStandard.ID}); err != nil {
		t.Fatalf("RunE() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "cleared") {
		t.Errorf("output = %q, expected cleared", buf.String())
	}

	store, err = storage.Open(db)
	if err != nil {
		t.Fatalf("Open() after the command failed: %v", err)
	}
	defer store.Close()
	if best, _ := store.HighScore(t2048.VariantStandard.ID); best != 0 {
		t.Errorf("HighScore() = %d after reset, expected 0", best)
	}
}

func TestScoresReturnsOpenError(t *testing.T) {
	prepare(t, scoresCmd)
	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := scoresCmd.Flags().Set("db", filepath.Join(blocker, "scores.db")); err != nil {
		t.Fatal(err)
	}

	if err := scoresCmd.RunE(scoresCmd, nil); err == nil {
		t.Error("RunE() should return the open error instead of exiting")
	}
}
