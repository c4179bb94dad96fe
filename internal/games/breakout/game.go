package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// variant distinguishes the registered flavors of the game.
type variant struct {
	id           string
	title        string
	firstHitOnly bool
}

var (
	variantClassic = variant{id: "breakout", title: "Breakout"}
	variantStrict  = variant{id: "breakout_strict", title: "Breakout (Strict)", firstHitOnly: true}
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game connects a Session to the platform: it turns input frames into
// session actions and paddle commands, and draws the session into a screen.
type Game struct {
	variant  variant
	fixedCfg *config.BreakoutConfig
	preset   config.DifficultyPreset // overrides difficultyPreset when set
	session  *Session
	status   registry.StatusListener
	runtime  core.RuntimeConfig
	view     viewport

	// holdLeft counts down the frames a keyboard move intent stays active.
	holdLeft int
}

// New creates a Breakout game with multi-hit brick collisions.
func New() *Game {
	return &Game{variant: variantClassic}
}

// NewStrict creates a Breakout game that breaks at most one brick per frame.
func NewStrict() *Game {
	return &Game{variant: variantStrict}
}

// NewWithConfig creates a game that always uses cfg, ignoring the CLI config path and preset.
func NewWithConfig(cfg config.BreakoutConfig) *Game {
	cfg = cfg.Clone()
	return &Game{variant: variantClassic, fixedCfg: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.title
}

// loadConfig resolves the configuration for a new session.
func (g *Game) loadConfig() config.BreakoutConfig {
	if g.fixedCfg != nil {
		return g.fixedCfg.Clone()
	}

	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		adjusted := cfg.Clone()
		config.ApplyBreakoutPreset(&adjusted, preset)
		// A preset can push a custom config out of range, e.g. a paddle
		// wider than the arena. Such a preset is ignored.
		if adjusted.Validate() == nil {
			cfg = adjusted
		}
	}
	if g.variant.firstHitOnly {
		cfg.Gameplay.FirstHitOnly = true
	}
	return cfg
}

// UseDifficulty sets the preset for this instance, taking precedence over
// SetDifficultyPreset. It applies from the next Reset.
func (g *Game) UseDifficulty(preset config.DifficultyPreset) {
	g.preset = preset
}

// Reset creates a fresh session in the start state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.session = NewSession(g.loadConfig())
	g.attachStatus()
	g.holdLeft = 0
	g.view = newViewport(g.session, runtime.ScreenW, runtime.ScreenH)
}

// SetStatusListener registers l for this and every later session.
func (g *Game) SetStatusListener(l registry.StatusListener) {
	g.status = l
	g.attachStatus()
}

func (g *Game) attachStatus() {
	if g.session == nil {
		return
	}
	if g.status == nil {
		g.session.SetListener(nil)
		return
	}
	g.session.SetListener(&statusRelay{out: g.status, last: g.session.State()})
}

// statusRelay turns session notifications into phase names.
type statusRelay struct {
	out  registry.StatusListener
	last State
}

func (r *statusRelay) StatsChanged(score, lives int) {
	r.out.StatsChanged(score, lives)
}

func (r *statusRelay) StateChanged(state State) {
	r.out.PhaseChanged(r.last.String(), state.String())
	r.last = state
}

// StatusRows returns the number of screen rows taken by the HUD.
func (g *Game) StatusRows() int {
	return hudRows
}

// Resize adapts rendering and pointer mapping to a new screen size
// without touching the session.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.session != nil {
		g.view = newViewport(g.session, width, height)
	}
}

// Step applies one frame of input and advances the session by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	if g.view.tooSmall() {
		// Keep polling so the round resumes once the window grows.
		return core.StepResult{State: g.State(), Continue: true}
	}

	s := g.session
	switch state := s.State(); {
	case in.Has(core.ActionRestart) && state.Terminal():
		s.Restart()
		g.holdLeft = 0
	case in.Has(core.ActionLaunch) && state == StateStart:
		s.Begin()
	case in.Has(core.ActionPause):
		s.TogglePause()
	}

	g.applyPaddleInput(in)

	cont := s.Frame()
	return core.StepResult{State: g.State(), Continue: cont}
}

// applyPaddleInput translates input into paddle commands.
// Terminals report key presses but no releases, so a move intent is kept
// for a few frames after the last key event and then stopped.
func (g *Game) applyPaddleInput(in core.InputFrame) {
	p := g.session.Paddle()
	if p == nil {
		return
	}
	// The paddle is frozen while paused and once the round is over.
	if st := g.session.State(); st != StatePlaying && st != StateStart {
		return
	}

	hold := g.session.cfg.Gameplay.PaddleHoldTicks

	switch {
	case in.HasPointer:
		p.Stop()
		p.SetPosition(g.view.arenaX(in.Pointer))
		g.holdLeft = 0
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		p.MoveLeft()
		g.holdLeft = hold
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		p.MoveRight()
		g.holdLeft = hold
	case in.Has(core.ActionStop):
		p.Stop()
		g.holdLeft = 0
	case g.holdLeft > 0:
		g.holdLeft--
		if g.holdLeft == 0 {
			p.Stop()
		}
	}
}

// State returns the summary reported to the platform.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Lives:    s.Lives(),
		Phase:    s.State().String(),
		GameOver: s.State().Terminal(),
		Paused:   s.State() == StatePaused,
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// SnapshotHash returns the hash of the current session snapshot.
func (g *Game) SnapshotHash() uint64 {
	if g.session == nil {
		return 0
	}
	snap := g.session.Snapshot()
	return snap.Hash()
}

// ConfigYAML returns the configuration of the current session as YAML.
func (g *Game) ConfigYAML() ([]byte, error) {
	if g.session != nil {
		return config.MarshalBreakout(g.session.Config())
	}
	return config.MarshalBreakout(g.loadConfig())
}

// UseConfigYAML pins the configuration used by subsequent Resets.
func (g *Game) UseConfigYAML(data []byte) error {
	cfg, err := config.ParseBreakout(data)
	if err != nil {
		return err
	}
	g.fixedCfg = &cfg
	return nil
}

// Register the games with the registry
func init() {
	registry.Register(variantClassic.id, func() registry.Game {
		return New()
	})
	registry.Register(variantStrict.id, func() registry.Game {
		return NewStrict()
	})
}
