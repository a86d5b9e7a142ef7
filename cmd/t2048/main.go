package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDB       string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string

	logger  = log.New(io.Discard)
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "t2048 [variant]",
	Short: "Animated 2048 for the terminal",
	Long: `t2048 is the sliding-tile puzzle 2048 rendered in the terminal.
Slide the board with arrows, WASD or hjkl. Equal tiles merge.
Press u to take back the last move and space for a new game once the board locks up.

Run without arguments to play the standard variant, or use 'menu' to pick one.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setupEnv,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		variant := t2048.VariantStandard.ID
		if len(args) == 1 {
			variant = args[0]
		}
		return play(variant)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Maximum animation frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed for tile spawns (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "~/.arcade/t2048.db", "Path to the high score database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/t2048.log", "Log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// envFlags maps persistent flags to environment variables that may set them.
var envFlags = map[string]string{
	"db":        "T2048_DB",
	"config":    "T2048_CONFIG",
	"log-file":  "T2048_LOG_FILE",
	"log-level": "T2048_LOG_LEVEL",
}

// setupEnv loads .env, applies environment defaults to flags the user did
// not set, and opens the log file. The terminal belongs to Bubble Tea, so
// logs never go to stderr.
func setupEnv(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	for name, env := range envFlags {
		v, ok := os.LookupEnv(env)
		if !ok || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	if flagLogFile == "" {
		return nil
	}
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
