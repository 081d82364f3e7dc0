// shatter is a terminal projectile toy: fire at a field of targets and
// watch every hit shatter into new projectiles.
//
// Usage:
//
//	shatter                  - Play (same as "shatter play")
//	shatter play [game]      - Play a game (default: shatter)
//	shatter list             - List available games
//	shatter config           - Print the effective configuration
//	shatter simulate         - Run the simulation headless and log stats
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shatter/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/shatter/internal/games/shatter"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string

	// Game flags, shared by play, config and simulate
	flagConfig string
	flagPreset string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shatter",
	Short: "Shatter - fire at targets that split into projectiles",
	Long: `Shatter is a terminal projectile toy. Aim with the mouse, click to
fire, and every target you hit shatters into three new projectiles that
keep the chain going.

Available commands:
  play      - Play (default when no command is given)
  list      - Show all available games
  config    - Print the effective configuration as YAML
  simulate  - Run headless and log projectile statistics

Examples:
  shatter
  shatter play --preset dense
  shatter play --config ./my-shatter.toml
  shatter config --preset sparse
  shatter simulate --frames 3600 --fire-every 2 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	addGameFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// addGameFlags registers the config selection flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom config (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&flagPreset, "preset", "", "Constant preset: sparse, classic, dense")
}

// parsePreset validates --preset or exits.
func parsePreset() config.Preset {
	p, err := config.ParsePreset(flagPreset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return p
}

// newLogger builds the CLI logger. Without --log-file it writes to
// fallback. The returned close function releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shatter",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for commands that exit on error.
func mustLogger(fallback io.Writer) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}
