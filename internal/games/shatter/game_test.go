package shatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/shatter/internal/config"
	"github.com/vovakirdan/shatter/internal/core"
	"github.com/vovakirdan/shatter/internal/games/shatter/sim"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

// useConfig points the game at a YAML file with the given body for the
// duration of the test. An empty body selects the embedded default.
func useConfig(t *testing.T, body string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := ""
	if body != "" {
		path = filepath.Join(t.TempDir(), "shatter.yaml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	SetConfigPath(path)
	SetPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetPreset("")
	})
}

func newGame(t *testing.T, body string) *Game {
	t.Helper()
	useConfig(t, body)
	g := New()
	g.Reset(testRuntime)
	if g.State().GameOver {
		t.Fatalf("game ended on reset: %s", g.State().Message)
	}
	return g
}

func fireAt(x, y int) core.InputFrame {
	in := core.NewInputFrame()
	in.SetPointer(x, y)
	in.Set(core.ActionFire)
	return in
}

func TestGameReset(t *testing.T) {
	g := newGame(t, "")

	s := g.Sim()
	if s.TargetCount() != 456 {
		t.Errorf("TargetCount() = %d, expected 456", s.TargetCount())
	}
	// 80x24 cells at 10x20 units per cell
	if want := core.V(400, 240); s.Player() != want {
		t.Errorf("player at %v, expected center %v", s.Player(), want)
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d, expected 0", g.State().Score)
	}
}

func TestGamePresetApplied(t *testing.T) {
	useConfig(t, "")
	SetPreset(config.PresetSparse)

	g := New()
	g.Reset(testRuntime)
	if g.Sim().TargetCount() != 120 {
		t.Errorf("sparse preset TargetCount() = %d, expected 120", g.Sim().TargetCount())
	}
}

func TestGameFireNeedsPointer(t *testing.T) {
	g := newGame(t, "targets:\n  count: 1\n  radius: 0.001\n")

	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	g.Step(in)
	if g.Sim().ProjectileCount() != 0 {
		t.Fatalf("fire without a pointer should do nothing, have %d", g.Sim().ProjectileCount())
	}

	g.Step(fireAt(40, 2))
	if g.Sim().ProjectileCount() != 1 {
		t.Fatalf("fire with a pointer should spawn, have %d", g.Sim().ProjectileCount())
	}

	p := g.Sim().Projectiles().At(0)
	if p.Dir.Y >= 0 {
		t.Errorf("shot toward the top row should head up, dir = %v", p.Dir)
	}
}

func TestGameUsesElapsed(t *testing.T) {
	g := newGame(t, "")
	start := g.Sim().Player()

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Elapsed = 100 * time.Millisecond
	g.Step(in)

	moved := g.Sim().Player().X - start.X
	if moved < 34.4 || moved > 34.6 {
		t.Errorf("player moved %f units in 100ms, expected 34.5", moved)
	}
}

func TestGamePause(t *testing.T) {
	g := newGame(t, "")
	start := g.Sim().Player()

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)
	if g.Sim().Player() != start {
		t.Error("paused game should not move the player")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGamePauseOverlay(t *testing.T) {
	g := newGame(t, "")
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(screen)

	// A 5-row box centered on 24 rows puts the title on row 10.
	if row := screen.Row(10); !strings.Contains(row, "PAUSED") {
		t.Fatalf("row 10 = %q, expected the PAUSED title", row)
	}
	x := (testRuntime.ScreenW - len("PAUSED")) / 2
	if c := screen.GetCell(x, 10); c.Rune != 'P' || c.Color != core.ColorYellow {
		t.Errorf("cell (%d, 10) = %+v, expected a centered yellow title", x, c)
	}
	if !strings.Contains(screen.Row(12), "Press P to resume") {
		t.Errorf("row 12 = %q, expected the resume hint", screen.Row(12))
	}
}

func TestGameOverlayFitsNarrowScreen(t *testing.T) {
	g := newGame(t, "")
	g.fail(sim.ErrStoreFull)

	screen := core.NewScreen(8, 24)
	g.Render(screen)

	// The box is capped at the screen width, so both corners are visible.
	if c := screen.GetCell(0, 9).Rune; c != '┌' {
		t.Errorf("left corner = %q, expected '┌'", c)
	}
	if c := screen.GetCell(7, 9).Rune; c != '┐' {
		t.Errorf("right corner = %q, expected '┐'", c)
	}
}

func TestGameAbortOnOverflow(t *testing.T) {
	g := newGame(t, "targets:\n  count: 1\n  radius: 0.001\nprojectiles:\n  max: 1\n  on_overflow: abort\n")

	g.Step(fireAt(40, 2))
	st := g.Step(fireAt(40, 2)).State
	if !st.GameOver {
		t.Fatal("overflow with abort policy should end the round")
	}
	if !strings.Contains(st.Message, "store full") {
		t.Errorf("Message = %q, expected the store error", st.Message)
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	if st := g.Step(restart).State; st.GameOver {
		t.Error("restart should start a new round")
	}
	if g.Sim().ProjectileCount() != 0 {
		t.Errorf("new round should have no projectiles, have %d", g.Sim().ProjectileCount())
	}
}

func TestGameDropOnOverflow(t *testing.T) {
	g := newGame(t, "targets:\n  count: 1\n  radius: 0.001\nprojectiles:\n  max: 1\n")

	g.Step(fireAt(40, 2))
	st := g.Step(fireAt(40, 2)).State
	if st.GameOver {
		t.Fatalf("drop policy should keep playing: %s", st.Message)
	}
	if g.Sim().ProjectileCount() != 1 {
		t.Errorf("ProjectileCount() = %d, expected 1", g.Sim().ProjectileCount())
	}
}

func TestGameResizeKeepsField(t *testing.T) {
	g := newGame(t, "")
	before := append([]sim.Target(nil), g.Sim().Targets().Targets()...)

	g.Resize(40, 12)
	g.Step(core.NewInputFrame())

	after := g.Sim().Targets().Targets()
	for i := range before {
		if before[i].Pos != after[i].Pos {
			t.Fatalf("target %d moved on resize", i)
		}
	}
	// The player is clamped into the smaller 400x240 viewport.
	if p := g.Sim().Player(); p.X > 400 || p.Y > 240 {
		t.Errorf("player %v outside resized viewport", p)
	}
}

func TestGameRender(t *testing.T) {
	g := newGame(t, "")
	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)

	g.Step(fireAt(70, 20))
	g.Render(screen)

	if c := screen.GetCell(40, 12); c.Rune != PlayerChar || c.Color != core.ColorPink {
		t.Errorf("player cell = %+v, expected pink '@' at (40, 12)", c)
	}
	if !strings.Contains(screen.Row(2), "Obj count: ") {
		t.Errorf("HUD row 2 = %q", screen.Row(2))
	}
	if !strings.Contains(screen.Row(1), "Proj count: ") {
		t.Errorf("HUD row 1 = %q", screen.Row(1))
	}

	targets := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.GetCell(x, y).Rune == TargetChar {
				targets++
			}
		}
	}
	if targets == 0 {
		t.Error("expected targets on screen")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() core.GameState {
		g := newGame(t, "")
		for i := 0; i < 300; i++ {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.SetPointer(i%80, (i/4)%24)
				in.Set(core.ActionFire)
			}
			if i%60 < 30 {
				in.Set(core.ActionLeft)
			}
			g.Step(in)
		}
		return g.State()
	}

	if s1, s2 := run(), run(); s1 != s2 {
		t.Errorf("runs diverged: %+v vs %+v", s1, s2)
	}
}

func TestSimConfigMapsPolicies(t *testing.T) {
	cfg := config.DefaultShatterConfig()
	cfg.Projectiles.Growth = config.GrowthAmortized
	cfg.Projectiles.OnOverflow = config.OverflowAbort
	cfg.Projectiles.Max = 10

	sc := SimConfig(cfg)
	if sc.Growth != sim.GrowAmortized || sc.Overflow != sim.OverflowAbort || sc.MaxProjectiles != 10 {
		t.Errorf("SimConfig = %+v", sc)
	}
	if sc.TargetCount != 456 || sc.SplitCount != 3 {
		t.Errorf("constants not carried over: %+v", sc)
	}
}
