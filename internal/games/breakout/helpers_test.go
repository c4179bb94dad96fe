package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// fakeArena is an 800x600 arena that counts lost balls.
type fakeArena struct {
	w, h float64
	lost int
}

func newFakeArena() *fakeArena {
	return &fakeArena{w: 800, h: 600}
}

func (a *fakeArena) Width() float64  { return a.w }
func (a *fakeArena) Height() float64 { return a.h }
func (a *fakeArena) BallLost()       { a.lost++ }

// scoreCounter collects awarded points.
type scoreCounter struct {
	total int
	calls int
}

func (c *scoreCounter) AddScore(points int) {
	c.total += points
	c.calls++
}

// recordingListener records every notification.
type recordingListener struct {
	stats  [][2]int
	states []State
}

func (l *recordingListener) StatsChanged(score, lives int) {
	l.stats = append(l.stats, [2]int{score, lives})
}

func (l *recordingListener) StateChanged(state State) {
	l.states = append(l.states, state)
}

func testConfig() config.BreakoutConfig {
	return config.DefaultBreakoutConfig()
}
