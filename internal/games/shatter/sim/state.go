// Package sim implements the projectile and target simulation: a fixed
// field of stationary targets, an ordered projectile store, straight-line
// motion, split-on-impact collision resolution, and per-frame compaction.
//
// The package is single-threaded and frame-synchronous. A Simulation is
// owned by one frame loop and must not be shared between goroutines.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/shatter/internal/core"
)

// OverflowPolicy selects what Step does when the projectile store is full.
type OverflowPolicy int

const (
	// OverflowDrop discards the spawn and reports it in StepResult.Dropped.
	OverflowDrop OverflowPolicy = iota
	// OverflowAbort returns the ErrStoreFull error from Step.
	OverflowAbort
)

// String returns the config name of the policy.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowDrop:
		return "drop"
	case OverflowAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Config holds the constants of a simulation.
type Config struct {
	PlayerSpeed float64
	ClampPlayer bool

	TargetCount  int
	TargetRadius float64

	ProjectileSpeed  float64
	ProjectileRadius float64
	SplitCount       int

	Growth         GrowthPolicy
	MaxProjectiles int
	Overflow       OverflowPolicy
}

// DefaultConfig returns the constants of the classic build.
func DefaultConfig() Config {
	return Config{
		PlayerSpeed:      345,
		ClampPlayer:      true,
		TargetCount:      456,
		TargetRadius:     7,
		ProjectileSpeed:  234,
		ProjectileRadius: 3,
		SplitCount:       3,
		Growth:           GrowExact,
		Overflow:         OverflowDrop,
	}
}

// Input is the per-frame input consumed by Step.
type Input struct {
	Up, Left, Down, Right bool

	// Fire spawns one projectile from the player toward Aim.
	Fire bool
	Aim  core.Vec

	// ResetRound clears all projectiles and respawns the targets.
	ResetRound bool
	// RespawnTargets respawns the targets and keeps the projectiles.
	RespawnTargets bool
}

// StepResult reports what happened during one frame.
type StepResult struct {
	Frame     uint64
	Exited    int
	Hits      []Hit
	Spawned   int
	Dropped   int
	Compacted int
}

// Simulation owns the player, the target field, and the projectile store.
type Simulation struct {
	cfg Config
	rng *rand.Rand

	player      core.Vec
	targets     *TargetField
	projectiles *ProjectileStore
	visible     int
	bounds      Bounds
	frame       uint64
}

// New creates a simulation. Call Start before the first Step.
func New(cfg Config, seed int64) *Simulation {
	rng := rand.New(rand.NewSource(seed))
	return &Simulation{
		cfg:         cfg,
		rng:         rng,
		targets:     NewTargetField(cfg.TargetCount, cfg.TargetRadius, rng),
		projectiles: NewProjectileStore(StoreOptions{Growth: cfg.Growth, Max: cfg.MaxProjectiles}),
	}
}

// Start places the targets for the first round in a width x height
// viewport. The player starts at the origin.
func (s *Simulation) Start(width, height int) error {
	s.player = core.Vec{}
	s.frame = 0
	s.projectiles.Clear()
	s.setBounds(width, height)
	return s.respawnTargets(width, height)
}

func (s *Simulation) setBounds(width, height int) {
	s.bounds = Bounds{W: float64(width), H: float64(height)}
}

func (s *Simulation) respawnTargets(width, height int) error {
	if err := s.targets.Reset(width, height); err != nil {
		return err
	}
	s.visible = s.targets.Len()
	return nil
}

// Step advances the simulation by dt seconds in a width x height viewport.
//
// Order: player movement, round reset, target respawn, fire, integrate,
// resolve, compact. Store overflow is handled according to the configured
// OverflowPolicy; any other error ends the step early.
func (s *Simulation) Step(dt float64, in Input, width, height int) (StepResult, error) {
	s.frame++
	res := StepResult{Frame: s.frame}
	s.setBounds(width, height)

	s.movePlayer(dt, in)

	if in.ResetRound {
		s.projectiles.Clear()
		if err := s.respawnTargets(width, height); err != nil {
			return res, fmt.Errorf("reset round: %w", err)
		}
	}

	if in.RespawnTargets {
		if err := s.respawnTargets(width, height); err != nil {
			return res, fmt.Errorf("respawn targets: %w", err)
		}
	}

	if in.Fire {
		err := s.projectiles.Spawn(s.player, in.Aim)
		switch {
		case errors.Is(err, ErrDegenerateAim):
			// Nothing to fire at.
		case err != nil:
			if abortErr := s.overflow(&res, 1, fmt.Errorf("fire: %w", err)); abortErr != nil {
				return res, abortErr
			}
		default:
			res.Spawned++
		}
	}

	res.Exited = Integrate(s.projectiles, s.cfg.ProjectileSpeed, dt, s.bounds)

	hits, err := Resolve(s.projectiles, s.targets, ResolveParams{
		ProjectileRadius: s.cfg.ProjectileRadius,
		SplitCount:       s.cfg.SplitCount,
	}, s.rng)
	res.Hits = hits.Hits
	res.Spawned += hits.Spawned
	s.visible -= len(hits.Hits)
	if s.visible < 0 {
		s.visible = 0
	}
	if err != nil {
		if abortErr := s.overflow(&res, hits.Dropped, err); abortErr != nil {
			return res, abortErr
		}
	}

	res.Compacted = s.projectiles.Compact()
	return res, nil
}

// overflow applies the overflow policy to a failed spawn.
func (s *Simulation) overflow(res *StepResult, dropped int, err error) error {
	if s.cfg.Overflow == OverflowAbort {
		return err
	}
	res.Dropped += dropped
	return nil
}

func (s *Simulation) movePlayer(dt float64, in Input) {
	d := s.cfg.PlayerSpeed * dt
	if in.Up {
		s.player.Y -= d
	}
	if in.Left {
		s.player.X -= d
	}
	if in.Down {
		s.player.Y += d
	}
	if in.Right {
		s.player.X += d
	}

	if s.cfg.ClampPlayer {
		s.player.X = core.ClampF(s.player.X, 0, s.bounds.W)
		s.player.Y = core.ClampF(s.player.Y, 0, s.bounds.H)
	}
}

// Player returns the player position.
func (s *Simulation) Player() core.Vec {
	return s.player
}

// SetPlayer moves the player to pos.
func (s *Simulation) SetPlayer(pos core.Vec) {
	s.player = pos
}

// VisibleTargets returns the on-screen target counter.
func (s *Simulation) VisibleTargets() int {
	return s.visible
}

// TargetCount returns the size of the target field.
func (s *Simulation) TargetCount() int {
	return s.targets.Len()
}

// ProjectileCount returns the number of stored projectiles. After Step this
// equals the live count since compaction has run.
func (s *Simulation) ProjectileCount() int {
	return s.projectiles.Len()
}

// Frame returns the number of completed steps.
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// Config returns the simulation constants.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Targets exposes the target field for inspection.
func (s *Simulation) Targets() *TargetField {
	return s.targets
}

// Projectiles exposes the projectile store for inspection.
func (s *Simulation) Projectiles() *ProjectileStore {
	return s.projectiles
}

// EachLiveTarget calls fn for every alive target in storage order.
func (s *Simulation) EachLiveTarget(fn func(i int, t Target)) {
	for i, t := range s.targets.targets {
		if t.Alive {
			fn(i, t)
		}
	}
}

// EachLiveProjectile calls fn for every alive projectile in store order.
// Dead entries awaiting compaction are skipped.
func (s *Simulation) EachLiveProjectile(fn func(i int, p Projectile)) {
	for i, p := range s.projectiles.items {
		if p.Alive {
			fn(i, p)
		}
	}
}
