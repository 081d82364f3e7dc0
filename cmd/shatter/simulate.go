package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shatter/internal/config"
	"github.com/vovakirdan/shatter/internal/core"
	"github.com/vovakirdan/shatter/internal/games/shatter"
	"github.com/vovakirdan/shatter/internal/games/shatter/sim"
)

var (
	flagFrames    int
	flagFireEvery int
	flagWidth     int
	flagHeight    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation headless",
	Long: `Runs the simulation without a terminal UI. The player sits in the
middle of the world and fires at a random point every --fire-every frames.
Targets are respawned once all of them are destroyed. Statistics are logged
once per simulated second and summarized at the end.

Sizes are world units, not terminal cells.

Examples:
  shatter simulate
  shatter simulate --frames 3600 --fire-every 1 --preset dense
  shatter simulate --seed 7 --log-level debug --log-file sim.log`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	addGameFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to simulate")
	simulateCmd.Flags().IntVar(&flagFireEvery, "fire-every", 6, "Fire once every N frames (0 = never)")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 800, "World width")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 480, "World height")
}

// simStats accumulates totals over a headless run.
type simStats struct {
	frames  int
	fired   int
	hits    int
	spawned int
	exited  int
	dropped int
	peak    int
	rounds  int
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()

	preset := parsePreset()
	cfg, source, err := config.LoadShatter(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset != "" {
		config.ApplyShatterPreset(&cfg, preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}

	start := time.Now()
	stats, err := simulate(shatter.SimConfig(cfg), seed, fps, logger)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if source == "" {
		source = "built-in defaults"
	}
	fmt.Printf("config:     %s\n", source)
	fmt.Printf("seed:       %d\n", seed)
	fmt.Printf("frames:     %d (%.1fs simulated, %s wall)\n",
		stats.frames, float64(stats.frames)/float64(fps), time.Since(start).Round(time.Millisecond))
	fmt.Printf("rounds:     %d\n", stats.rounds)
	fmt.Printf("fired:      %d\n", stats.fired)
	fmt.Printf("hits:       %d\n", stats.hits)
	fmt.Printf("spawned:    %d\n", stats.spawned)
	fmt.Printf("exited:     %d\n", stats.exited)
	fmt.Printf("dropped:    %d\n", stats.dropped)
	fmt.Printf("peak alive: %d\n", stats.peak)
}

// aimPoint picks the point the headless player fires at.
var aimPoint = func(rng *rand.Rand, width, height int) core.Vec {
	return core.V(rng.Float64()*float64(width), rng.Float64()*float64(height))
}

// simulate runs flagFrames frames of cfg in a flagWidth x flagHeight world.
func simulate(cfg sim.Config, seed int64, fps int, logger *log.Logger) (simStats, error) {
	var stats simStats

	s := sim.New(cfg, seed)
	if err := s.Start(flagWidth, flagHeight); err != nil {
		return stats, err
	}
	center := core.V(float64(flagWidth)/2, float64(flagHeight)/2)
	s.SetPlayer(center)
	stats.rounds = 1

	aimRNG := rand.New(rand.NewSource(seed + 1))
	dt := 1.0 / float64(fps)

	var second simStats
	for f := 1; f <= flagFrames; f++ {
		in := sim.Input{RespawnTargets: s.VisibleTargets() == 0}
		if in.RespawnTargets {
			stats.rounds++
			logger.Debug("field cleared", "frame", f, "rounds", stats.rounds)
		}
		if flagFireEvery > 0 && f%flagFireEvery == 0 {
			// Aiming at the player fires nothing, so it is not counted.
			if aim := aimPoint(aimRNG, flagWidth, flagHeight); aim != s.Player() {
				in.Fire = true
				in.Aim = aim
				stats.fired++
				second.fired++
			}
		}

		res, err := s.Step(dt, in, flagWidth, flagHeight)
		if err != nil {
			logger.Error("simulation aborted", "frame", f, "projectiles", s.ProjectileCount(), "error", err)
			return stats, fmt.Errorf("frame %d: %w", f, err)
		}

		stats.frames = f
		stats.hits += len(res.Hits)
		stats.spawned += res.Spawned
		stats.exited += res.Exited
		stats.dropped += res.Dropped
		second.hits += len(res.Hits)
		second.dropped += res.Dropped
		if n := s.ProjectileCount(); n > stats.peak {
			stats.peak = n
		}
		if res.Dropped > 0 {
			logger.Warn("projectile store full", "frame", f, "dropped", res.Dropped)
		}

		if f%fps == 0 {
			logger.Info("stats",
				"second", f/fps,
				"projectiles", s.ProjectileCount(),
				"capacity", s.Projectiles().Cap(),
				"targets", s.VisibleTargets(),
				"fired", second.fired,
				"hits", second.hits,
				"dropped", second.dropped,
			)
			second = simStats{}
		}
	}

	return stats, nil
}
