// Package shatter implements the projectile and target toy: the player
// fires at a field of stationary targets, and each target shatters into
// new projectiles when hit.
package shatter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shatter/internal/config"
	"github.com/vovakirdan/shatter/internal/core"
	"github.com/vovakirdan/shatter/internal/games/shatter/sim"
	"github.com/vovakirdan/shatter/internal/registry"
)

// Visual characters for rendering
const (
	TargetChar     = 'o'
	PlayerChar     = '@'
	ProjectileChar = '•'
	AimChar        = '+'
)

// configPath stores the custom config path set via CLI
var configPath string

// preset stores the constant preset set via CLI
var preset config.Preset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset sets the constant preset applied on top of the loaded config.
func SetPreset(p config.Preset) {
	preset = p
}

// SetLogger sets the logger used by new games. A nil logger discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a sim.Simulation to the platform: it converts terminal cells
// to world units, input frames to sim input, and the world to screen cells.
type Game struct {
	cfg     config.ShatterConfig
	sim     *sim.Simulation
	runtime core.RuntimeConfig
	log     *log.Logger

	aim      core.Vec
	hasAim   bool
	paused   bool
	gameOver bool
	message  string
	fps      float64
}

// New creates a new game instance.
func New() *Game {
	return &Game{log: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "shatter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Shatter"
}

// Reset loads the configuration and starts a fresh round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.WithPrefix(g.ID())

	cfg, source, err := config.LoadShatter(configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "error", err)
		cfg = config.DefaultShatterConfig()
	}
	if preset != "" {
		config.ApplyShatterPreset(&cfg, preset)
	}
	g.cfg = cfg

	g.paused = false
	g.gameOver = false
	g.message = ""
	g.hasAim = false
	g.fps = 0

	g.sim = sim.New(SimConfig(cfg), runtime.Seed)
	w, h := g.worldSize()
	if err := g.sim.Start(w, h); err != nil {
		g.fail(err)
		return
	}
	g.sim.SetPlayer(core.V(float64(w)/2, float64(h)/2))

	g.log.Info("round started",
		"config", sourceName(source),
		"preset", string(preset),
		"targets", cfg.Targets.Count,
		"world", fmt.Sprintf("%dx%d", w, h),
		"growth", cfg.Projectiles.Growth,
		"seed", runtime.Seed,
	)
}

func sourceName(source string) string {
	if source == "" {
		return "embedded"
	}
	return source
}

// SimConfig converts the file configuration to simulation constants.
// cfg is expected to be valid.
func SimConfig(cfg config.ShatterConfig) sim.Config {
	sc := sim.Config{
		PlayerSpeed:      cfg.Player.Speed,
		ClampPlayer:      cfg.Player.Clamp,
		TargetCount:      cfg.Targets.Count,
		TargetRadius:     cfg.Targets.Radius,
		ProjectileSpeed:  cfg.Projectiles.Speed,
		ProjectileRadius: cfg.Projectiles.Radius,
		SplitCount:       cfg.Projectiles.SplitCount,
		MaxProjectiles:   cfg.Projectiles.Max,
		Growth:           sim.GrowExact,
		Overflow:         sim.OverflowDrop,
	}
	if cfg.Projectiles.Growth == config.GrowthAmortized {
		sc.Growth = sim.GrowAmortized
	}
	if cfg.Projectiles.OnOverflow == config.OverflowAbort {
		sc.Overflow = sim.OverflowAbort
	}
	return sc
}

// Resize follows a terminal resize. The target field is kept; the next
// step integrates against the new viewport.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.log.Debug("viewport resized", "cols", width, "rows", height)
}

// worldSize returns the viewport in world units.
func (g *Game) worldSize() (int, int) {
	w := int(float64(g.runtime.ScreenW) * g.cfg.World.CellWidth)
	h := int(float64(g.runtime.ScreenH) * g.cfg.World.CellHeight)
	return w, h
}

// toWorld returns the world position of the center of a screen cell.
func (g *Game) toWorld(p core.Point) core.Vec {
	return core.V(
		(float64(p.X)+0.5)*g.cfg.World.CellWidth,
		(float64(p.Y)+0.5)*g.cfg.World.CellHeight,
	)
}

// toCell returns the screen cell containing a world position.
func (g *Game) toCell(v core.Vec) (int, int) {
	return int(v.X / g.cfg.World.CellWidth), int(v.Y / g.cfg.World.CellHeight)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := in.Elapsed.Seconds()
	if dt <= 0 {
		dt = g.runtime.TickSeconds()
	}
	g.trackFPS(dt)

	if in.HasPointer {
		g.aim = g.toWorld(in.Pointer)
		g.hasAim = true
	}

	input := sim.Input{
		Up:             in.Has(core.ActionUp),
		Left:           in.Has(core.ActionLeft),
		Down:           in.Has(core.ActionDown),
		Right:          in.Has(core.ActionRight),
		Fire:           in.Has(core.ActionFire) && g.hasAim,
		Aim:            g.aim,
		ResetRound:     in.Has(core.ActionRestart),
		RespawnTargets: in.Has(core.ActionRespawn),
	}

	w, h := g.worldSize()
	res, err := g.sim.Step(dt, input, w, h)
	if err != nil {
		g.fail(err)
		return core.StepResult{State: g.State()}
	}

	if res.Dropped > 0 {
		g.log.Warn("projectile store full, spawns dropped",
			"dropped", res.Dropped,
			"stored", g.sim.ProjectileCount(),
			"frame", res.Frame,
		)
	}
	if len(res.Hits) > 0 {
		g.log.Debug("targets hit",
			"hits", len(res.Hits),
			"remaining", g.sim.VisibleTargets(),
			"projectiles", g.sim.ProjectileCount(),
		)
	}
	if input.ResetRound {
		g.log.Info("round reset")
	}

	return core.StepResult{State: g.State()}
}

// fail ends the round with err shown on screen.
func (g *Game) fail(err error) {
	g.gameOver = true
	g.message = err.Error()
	g.log.Error("round aborted", "error", err)
}

// trackFPS keeps an exponential moving average of the tick rate.
func (g *Game) trackFPS(dt float64) {
	current := 1 / dt
	if g.fps == 0 {
		g.fps = current
		return
	}
	g.fps += (current - g.fps) * 0.1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	g.sim.EachLiveTarget(func(_ int, t sim.Target) {
		x, y := g.toCell(t.Pos)
		dst.SetColor(x, y, TargetChar, core.ColorWhite)
	})

	if g.hasAim {
		x, y := g.toCell(g.aim)
		dst.SetColor(x, y, AimChar, core.ColorGray)
	}

	g.sim.EachLiveProjectile(func(_ int, p sim.Projectile) {
		x, y := g.toCell(p.Pos)
		dst.SetColor(x, y, ProjectileChar, core.ColorRed)
	})

	// Player on top so fresh shots do not hide it.
	px, py := g.toCell(g.sim.Player())
	dst.SetColor(px, py, PlayerChar, core.ColorPink)

	dst.DrawTextColor(1, 0, fmt.Sprintf("FPS: %.0f", g.fps), core.ColorLime)
	dst.DrawTextColor(1, 1, fmt.Sprintf("Proj count: %d", g.sim.ProjectileCount()), core.ColorLime)
	dst.DrawTextColor(1, 2, fmt.Sprintf("Obj count: %d", g.sim.VisibleTargets()), core.ColorLime)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "ROUND ABORTED", g.message)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Min(core.Max(len(title), len(subtitle))+4, dst.Width())
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCenteredColor(box.Y+1, title, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, subtitle)
}

// State returns the current game state. The score is the number of
// targets destroyed since the field was last placed.
func (g *Game) State() core.GameState {
	score := 0
	if g.sim != nil {
		score = g.sim.TargetCount() - g.sim.VisibleTargets()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Message:  g.message,
	}
}

// Sim exposes the running simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Register the game with the registry
func init() {
	registry.Register("shatter", func() registry.Game {
		return New()
	})
}
