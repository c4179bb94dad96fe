package breakout

import "math"

// Snapshot is a copy of the session state using primitive types only.
// It is used for determinism checks and replay verification.
type Snapshot struct {
	Tick  int
	State string
	Score int
	Lives int

	PaddleX  float64
	PaddleDX float64

	BallX     float64
	BallY     float64
	BallDX    float64
	BallDY    float64
	BallSpeed float64

	// Broken[i] is the broken flag of the i-th brick in layout order.
	Broken []bool
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	broken := make([]bool, len(s.bricks))
	for i, b := range s.bricks {
		broken[i] = b.Broken()
	}

	snap := Snapshot{
		Tick:   s.tick,
		State:  s.state.String(),
		Score:  s.score,
		Lives:  s.lives,
		Broken: broken,
	}
	if s.paddle != nil {
		snap.PaddleX = s.paddle.X
		snap.PaddleDX = s.paddle.DX
	}
	if s.ball != nil {
		snap.BallX = s.ball.X
		snap.BallY = s.ball.Y
		snap.BallDX = s.ball.DX
		snap.BallDY = s.ball.DY
		snap.BallSpeed = s.ball.Speed
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick) //#nosec G115 -- hash computation
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation

	for _, f := range []float64{
		snap.PaddleX, snap.PaddleDX,
		snap.BallX, snap.BallY, snap.BallDX, snap.BallDY, snap.BallSpeed,
	} {
		h = h*31 + math.Float64bits(f)
	}

	for _, b := range snap.Broken {
		if b {
			h = h*31 + 1
		} else {
			h = h * 31
		}
	}
	return h
}
