package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shatter/internal/core"
	"github.com/vovakirdan/shatter/internal/games/shatter"
	"github.com/vovakirdan/shatter/internal/platform/tui"
	"github.com/vovakirdan/shatter/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: shatter).

Controls:
  Mouse        - Aim
  Click/Space  - Fire toward the cursor
  W/A/S/D      - Move (arrows work too)
  G            - New round (clears projectiles)
  R            - Respawn targets (hold to repeat)
  P/Esc        - Pause
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Presets:
  sparse   - 120 large targets, slow projectiles
  classic  - 456 targets (default)
  dense    - 900 small targets, fast projectiles

Examples:
  shatter play
  shatter play --preset dense --seed 42
  shatter play --config ./my-shatter.yaml --log-file shatter.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "shatter"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'shatter list' to see available games.")
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go nowhere unless --log-file is set.
	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and preset for games before creation
	if gameID == "shatter" {
		shatter.SetConfigPath(flagConfig)
		shatter.SetPreset(parsePreset())
		shatter.SetLogger(logger)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(game, cfg, logger); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
