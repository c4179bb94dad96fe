package breakout

import "github.com/vovakirdan/tui-breakout/internal/config"

// State is the lifecycle phase of a round.
type State int

const (
	StateStart    State = iota // Entities placed, waiting for Begin
	StatePlaying               // Frames are processed
	StatePaused                // Frames are skipped until resumed
	StateGameOver              // No lives left
	StateWin                   // No unbroken bricks left
)

// String returns the state name used in snapshots and logs.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round has ended.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateWin
}

// Listener is notified about changes a status display cares about.
type Listener interface {
	StatsChanged(score, lives int)
	StateChanged(state State)
}

// Session owns the paddle, ball and bricks of one play session together with
// score, lives and the round state.
type Session struct {
	cfg    config.BreakoutConfig
	engine *CollisionEngine

	paddle *Paddle
	ball   *Ball
	bricks []*Brick

	score int
	lives int
	state State
	tick  int
	debug string

	listener Listener
}

// NewSession creates a session in StateStart with a fresh layout.
// The config is copied and never modified afterwards.
func NewSession(cfg config.BreakoutConfig) *Session {
	s := &Session{
		cfg:    cfg.Clone(),
		engine: NewCollisionEngine(cfg),
	}
	s.init()
	return s
}

func (s *Session) init() {
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.tick = 0
	s.debug = ""
	s.paddle = NewPaddle(s, s.cfg.Paddle)
	s.ball = NewBall(s, s.cfg.Ball)
	s.bricks = LayoutBricks(s.cfg.Bricks)
}

// SetListener registers the status listener. Pass nil to remove it.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Width returns the arena width.
func (s *Session) Width() float64 { return s.cfg.Arena.Width }

// Height returns the arena height.
func (s *Session) Height() float64 { return s.cfg.Arena.Height }

// Begin starts the frame loop from StateStart.
// It reports whether the transition happened.
func (s *Session) Begin() bool {
	if s.state != StateStart {
		return false
	}
	s.setState(StatePlaying)
	return true
}

// Restart rebuilds paddle, ball, bricks, score and lives, then enters StatePlaying.
func (s *Session) Restart() {
	s.init()
	s.notifyStats()
	s.setState(StatePlaying)
}

// TogglePause switches between StatePlaying and StatePaused.
// It reports whether the state changed.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		s.setState(StatePaused)
	case StatePaused:
		s.setState(StatePlaying)
	default:
		return false
	}
	return true
}

// Frame advances the simulation by one frame: paddle and ball move, then
// collisions are resolved and the win condition is checked.
// It returns whether another frame should be scheduled.
func (s *Session) Frame() bool {
	if s.state != StatePlaying {
		return false
	}
	if s.paddle == nil || s.ball == nil {
		return false
	}

	s.tick++
	s.paddle.Update()
	s.ball.Update()

	// Losing the last life ends the frame here.
	if s.state != StatePlaying {
		return false
	}

	s.engine.Check(s.ball, s.paddle, s.bricks, s)

	if s.RemainingBricks() == 0 {
		s.setState(StateWin)
		return false
	}
	return true
}

// BallLost handles the ball leaving through the bottom of the arena.
func (s *Session) BallLost() {
	s.lives = max(s.lives-1, 0)
	s.notifyStats()

	if s.lives == 0 {
		s.setState(StateGameOver)
		return
	}
	s.ball.Reset()
}

// AddScore adds points to the score.
func (s *Session) AddScore(points int) {
	s.score += points
	s.notifyStats()
}

// RemainingBricks counts unbroken bricks.
func (s *Session) RemainingBricks() int {
	n := 0
	for _, b := range s.bricks {
		if !b.Broken() {
			n++
		}
	}
	return n
}

// Debug sets a free-form message for the status display.
func (s *Session) Debug(msg string) { s.debug = msg }

// DebugMessage returns the last debug message.
func (s *Session) DebugMessage() string { return s.debug }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// State returns the current round state.
func (s *Session) State() State { return s.state }

// Tick returns the number of frames processed since the last (re)start.
func (s *Session) Tick() int { return s.tick }

// Paddle returns the paddle. Input collaborators may call its
// MoveLeft, MoveRight, Stop and SetPosition methods.
func (s *Session) Paddle() *Paddle { return s.paddle }

// Ball returns the ball for read-only use by renderers.
func (s *Session) Ball() *Ball { return s.ball }

// Bricks returns the bricks in layout order for read-only use by renderers.
func (s *Session) Bricks() []*Brick { return s.bricks }

// Config returns a copy of the session's configuration.
func (s *Session) Config() config.BreakoutConfig { return s.cfg.Clone() }

func (s *Session) setState(next State) {
	if s.state == next {
		return
	}
	s.state = next
	if s.listener != nil {
		s.listener.StateChanged(next)
	}
}

func (s *Session) notifyStats() {
	if s.listener != nil {
		s.listener.StatsChanged(s.score, s.lives)
	}
}
