package breakout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

func newTestGame() *Game {
	g := NewWithConfig(config.DefaultBreakoutConfig())
	g.Reset(core.DefaultConfig()) // 80x24
	return g
}

func input(actions ...core.Action) core.InputFrame {
	var in core.InputFrame
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func pointer(col int) core.InputFrame {
	var in core.InputFrame
	in.SetPointer(col)
	return in
}

// scriptedInput produces a varied but fixed input sequence.
func scriptedInput(i int) core.InputFrame {
	switch {
	case i == 0:
		return input(core.ActionLaunch)
	case i%97 == 0:
		return pointer(i % 80)
	case i%40 < 6:
		return input(core.ActionRight)
	case i%40 >= 20 && i%40 < 26:
		return input(core.ActionLeft)
	case i%40 == 30:
		return input(core.ActionStop)
	}
	return core.InputFrame{}
}

func TestGameIDs(t *testing.T) {
	if id := New().ID(); id != "breakout" {
		t.Errorf("New().ID() = %q", id)
	}
	if id := NewStrict().ID(); id != "breakout_strict" {
		t.Errorf("NewStrict().ID() = %q", id)
	}
	if !registry.Exists("breakout") || !registry.Exists("breakout_strict") {
		t.Error("both variants should be registered")
	}
}

func TestStrictVariantSetsFirstHitOnly(t *testing.T) {
	g := NewStrict()
	g.Reset(core.DefaultConfig())

	if !g.Session().Config().Gameplay.FirstHitOnly {
		t.Error("strict variant should enable first-hit-only collisions")
	}
}

func TestStepBeforeReset(t *testing.T) {
	g := New()
	res := g.Step(input(core.ActionLaunch))
	if res.Continue {
		t.Error("Step before Reset should not continue")
	}
}

func TestLaunchFlow(t *testing.T) {
	g := newTestGame()

	res := g.Step(core.InputFrame{})
	if res.Continue {
		t.Error("nothing should be scheduled before launch")
	}
	if res.State.Phase != "start" {
		t.Errorf("Phase = %q, expected start", res.State.Phase)
	}

	res = g.Step(input(core.ActionLaunch))
	if !res.Continue {
		t.Error("launch should start scheduling frames")
	}
	if res.State.Phase != "playing" || res.State.Lives != 3 {
		t.Errorf("State = %+v", res.State)
	}
	if g.Session().Tick() != 1 {
		t.Errorf("Tick = %d, expected the launch frame to run", g.Session().Tick())
	}
}

func TestKeyboardHold(t *testing.T) {
	g := newTestGame()
	g.Step(input(core.ActionLaunch))
	p := g.Session().Paddle()

	g.Step(input(core.ActionRight))
	if p.DX != p.Speed {
		t.Fatalf("DX = %v, expected %v", p.DX, p.Speed)
	}

	hold := g.Session().Config().Gameplay.PaddleHoldTicks
	for i := 1; i < hold; i++ {
		g.Step(core.InputFrame{})
		if p.DX != p.Speed {
			t.Fatalf("after %d idle frames DX = %v, intent should still be held", i, p.DX)
		}
	}

	g.Step(core.InputFrame{})
	if p.DX != 0 {
		t.Errorf("DX = %v, intent should expire after %d idle frames", p.DX, hold)
	}
}

func TestOpposingKeysKeepIntent(t *testing.T) {
	g := newTestGame()
	g.Step(input(core.ActionLaunch))
	p := g.Session().Paddle()

	g.Step(input(core.ActionLeft))
	g.Step(input(core.ActionLeft, core.ActionRight))

	if p.DX != -p.Speed {
		t.Errorf("DX = %v, expected the left intent to continue", p.DX)
	}
}

func TestStopAction(t *testing.T) {
	g := newTestGame()
	g.Step(input(core.ActionLaunch))
	p := g.Session().Paddle()

	g.Step(input(core.ActionLeft))
	g.Step(input(core.ActionStop))

	if p.DX != 0 {
		t.Errorf("DX = %v, expected 0", p.DX)
	}
}

func TestPointerPositionsPaddle(t *testing.T) {
	tests := []struct {
		name  string
		col   int
		wantX float64
	}{
		{"left edge clamps", 0, 0},
		{"center", 40, 355},
		{"right edge clamps", 79, 700},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame()
			g.Step(pointer(tc.col))

			// The start state still accepts paddle positioning.
			if got := g.Session().Paddle().X; got != tc.wantX {
				t.Errorf("X = %v, expected %v", got, tc.wantX)
			}
		})
	}
}

func TestPauseViaInput(t *testing.T) {
	g := newTestGame()
	g.Step(input(core.ActionLaunch))

	res := g.Step(input(core.ActionPause))
	if res.Continue || !res.State.Paused {
		t.Errorf("after pause: %+v", res)
	}

	res = g.Step(input(core.ActionPause))
	if !res.Continue || res.State.Paused {
		t.Errorf("after resume: %+v", res)
	}
}

func TestRestartOnlyAfterRoundEnds(t *testing.T) {
	g := newTestGame()
	g.Step(input(core.ActionLaunch))
	for range 10 {
		g.Step(core.InputFrame{})
	}

	g.Step(input(core.ActionRestart))
	if tick := g.Session().Tick(); tick != 12 {
		t.Errorf("Tick = %d, restart while playing should be ignored", tick)
	}

	g.Session().lives = 0
	g.Session().setState(StateGameOver)

	res := g.Step(core.InputFrame{})
	if res.Continue || !res.State.GameOver {
		t.Errorf("after game over: %+v", res)
	}

	res = g.Step(input(core.ActionRestart))
	if !res.Continue || res.State.Phase != "playing" {
		t.Errorf("after restart: %+v", res)
	}
	if res.State.Lives != 3 || res.State.Score != 0 {
		t.Errorf("restart should reinitialize: %+v", res.State)
	}
}

func TestDeterminism(t *testing.T) {
	a, b := newTestGame(), newTestGame()

	for i := range 3000 {
		in := scriptedInput(i)
		a.Step(in)
		b.Step(in)
		if a.SnapshotHash() != b.SnapshotHash() {
			t.Fatalf("hash mismatch at frame %d", i)
		}
	}
	if a.Session().Tick() == 0 {
		t.Fatal("simulation never ran")
	}
}

func TestHashDiffersOnDifferentInput(t *testing.T) {
	a, b := newTestGame(), newTestGame()
	a.Step(input(core.ActionLaunch))
	b.Step(input(core.ActionLaunch))

	a.Step(input(core.ActionLeft))
	b.Step(input(core.ActionRight))

	if a.SnapshotHash() == b.SnapshotHash() {
		t.Error("different paddle moves should produce different hashes")
	}
}

func TestTooSmallScreenPausesSimulation(t *testing.T) {
	g := newTestGame()
	g.Step(input(core.ActionLaunch))
	g.Resize(20, 10)

	tick := g.Session().Tick()
	res := g.Step(core.InputFrame{})
	if !res.Continue {
		t.Error("game should keep polling while the window is too small")
	}
	if g.Session().Tick() != tick {
		t.Error("simulation advanced on a too-small screen")
	}

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Errorf("missing too-small message:\n%s", scr.String())
	}

	g.Resize(80, 24)
	g.Step(core.InputFrame{})
	if g.Session().Tick() != tick+1 {
		t.Error("simulation should resume after the window grows")
	}
}

func TestRenderStartScreen(t *testing.T) {
	g := newTestGame()
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	hud := scr.Row(0)
	for _, want := range []string{"Score: 0", "Lives: 3", "Breakout"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if !strings.Contains(scr.String(), "Press SPACE to start") {
		t.Error("missing start prompt")
	}

	// First brick row: arena y=60 maps to row 4, x=30 to column 3.
	if cell := scr.GetCell(3, 4); cell.Rune != BrickChar || cell.Color != core.ColorRed {
		t.Errorf("cell (3,4) = %+v, expected a red brick", cell)
	}
	// Paddle spans arena x 350..450 on the last row.
	if r := scr.Get(40, 23); r != PaddleChar {
		t.Errorf("cell (40,23) = %q, expected paddle", r)
	}
	if r := scr.Get(40, 22); r != BallChar {
		t.Errorf("cell (40,22) = %q, expected ball", r)
	}
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StatePaused, "PAUSED"},
		{StateGameOver, "GAME OVER"},
		{StateWin, "YOU WIN!"},
	}

	for _, tc := range tests {
		t.Run(tc.state.String(), func(t *testing.T) {
			g := newTestGame()
			g.Session().setState(tc.state)

			scr := core.NewScreen(80, 24)
			g.Render(scr)
			if !strings.Contains(scr.String(), tc.want) {
				t.Errorf("missing %q overlay:\n%s", tc.want, scr.String())
			}
		})
	}
}

func TestRenderDebugMessage(t *testing.T) {
	g := newTestGame()
	g.Session().Debug("ball stuck?")

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.Row(1), "ball stuck?") {
		t.Errorf("row 1 = %q, expected debug message", scr.Row(1))
	}
}

func TestUseConfigYAML(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Gameplay.Lives = 5
	data, err := config.MarshalBreakout(cfg)
	if err != nil {
		t.Fatalf("MarshalBreakout: %v", err)
	}

	g := New()
	if err := g.UseConfigYAML(data); err != nil {
		t.Fatalf("UseConfigYAML: %v", err)
	}
	g.Reset(core.DefaultConfig())

	if g.State().Lives != 5 {
		t.Errorf("Lives = %d, expected 5", g.State().Lives)
	}

	out, err := g.ConfigYAML()
	if err != nil {
		t.Fatalf("ConfigYAML: %v", err)
	}
	if !strings.Contains(string(out), "lives: 5") {
		t.Errorf("ConfigYAML missing lives:\n%s", out)
	}

	if err := g.UseConfigYAML([]byte("gameplay:\n  lives: 0\n")); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestUseDifficulty(t *testing.T) {
	g := New()
	g.UseDifficulty(config.DifficultyHard)
	g.Reset(core.DefaultConfig())

	cfg := g.Session().Config()
	if cfg.Gameplay.Lives != 2 {
		t.Errorf("Lives = %d, expected 2 on hard", cfg.Gameplay.Lives)
	}
	if cfg.Paddle.Width != 75 {
		t.Errorf("paddle width = %v, expected 75 on hard", cfg.Paddle.Width)
	}

	// A pinned config is used as is.
	pinned := NewWithConfig(config.DefaultBreakoutConfig())
	pinned.UseDifficulty(config.DifficultyHard)
	pinned.Reset(core.DefaultConfig())
	if lives := pinned.Session().Config().Gameplay.Lives; lives != 3 {
		t.Errorf("pinned Lives = %d, expected 3", lives)
	}
}

func TestPresetIgnoredWhenConfigWouldBreak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.yaml")
	if err := os.WriteFile(path, []byte("paddle:\n  width: 700\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.UseDifficulty(config.DifficultyEasy) // 700 * 1.25 > arena width
	g.Reset(core.DefaultConfig())

	cfg := g.Session().Config()
	if cfg.Paddle.Width != 700 || cfg.Gameplay.Lives != 3 {
		t.Errorf("paddle width %v, lives %d: expected the config without the preset",
			cfg.Paddle.Width, cfg.Gameplay.Lives)
	}

	data, err := g.ConfigYAML()
	if err != nil {
		t.Fatalf("ConfigYAML: %v", err)
	}
	if err := New().UseConfigYAML(data); err != nil {
		t.Errorf("recorded config should load again: %v", err)
	}

	// A preset that fits is still applied.
	g.UseDifficulty(config.DifficultyHard)
	g.Reset(core.DefaultConfig())
	if w := g.Session().Config().Paddle.Width; w != 525 {
		t.Errorf("paddle width = %v, expected 525 on hard", w)
	}
}

func TestPaddleFrozenOutsidePlay(t *testing.T) {
	t.Run("paused", func(t *testing.T) {
		g := newTestGame()
		g.Step(input(core.ActionLaunch))
		g.Step(input(core.ActionPause))
		p := g.Session().Paddle()
		x := p.X

		g.Step(pointer(0))
		g.Step(input(core.ActionRight))
		if p.X != x || p.DX != 0 {
			t.Errorf("paddle moved while paused: X %v -> %v, DX %v", x, p.X, p.DX)
		}
	})

	t.Run("game over", func(t *testing.T) {
		cfg := config.DefaultBreakoutConfig()
		cfg.Gameplay.Lives = 1
		g := NewWithConfig(cfg)
		g.Reset(core.DefaultConfig())
		g.Step(input(core.ActionLaunch))
		// Keep the paddle on the far side of the ball.
		for i := 0; i < 20000 && !g.State().GameOver; i++ {
			if g.Session().Ball().X < 400 {
				g.Step(pointer(79))
			} else {
				g.Step(pointer(0))
			}
		}
		if g.Session().State() != StateGameOver {
			t.Fatalf("state = %v, expected the ball to be lost", g.Session().State())
		}

		hash := g.SnapshotHash()
		g.Step(pointer(79))
		g.Step(input(core.ActionLeft))
		if g.SnapshotHash() != hash {
			t.Error("input after game over changed the snapshot")
		}
	})
}

type phaseRecorder struct {
	phases []string
	stats  [][2]int
}

func (r *phaseRecorder) StatsChanged(score, lives int) {
	r.stats = append(r.stats, [2]int{score, lives})
}

func (r *phaseRecorder) PhaseChanged(from, to string) {
	r.phases = append(r.phases, from+">"+to)
}

func TestStatusListenerFollowsResets(t *testing.T) {
	g := newTestGame()
	var rec phaseRecorder
	g.SetStatusListener(&rec)

	g.Step(input(core.ActionLaunch))
	g.Step(input(core.ActionPause))
	g.Reset(core.DefaultConfig())
	g.Step(input(core.ActionLaunch))

	want := []string{"start>playing", "playing>paused", "start>playing"}
	if strings.Join(rec.phases, " ") != strings.Join(want, " ") {
		t.Errorf("phases = %v, expected %v", rec.phases, want)
	}

	g.SetStatusListener(nil)
	g.Step(input(core.ActionPause))
	if len(rec.phases) != len(want) {
		t.Error("a removed listener should not be notified")
	}

	if g.StatusRows() != hudRows {
		t.Errorf("StatusRows = %d, expected %d", g.StatusRows(), hudRows)
	}
}
